package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"genai-chat/internal/app"
	"genai-chat/internal/chat"
	"genai-chat/internal/model"
	"genai-chat/internal/render"
	"genai-chat/internal/service"
)

// samplingFlags override the configured sampling only when set.
type samplingFlags struct {
	temperature      float64
	topP             float64
	topK             int
	frequencyPenalty float64
	presencePenalty  float64
}

func (f *samplingFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.temperature, "temperature", 0, "sampling temperature in [0,1] (default from config)")
	fs.Float64Var(&f.topP, "top-p", 0, "nucleus sampling mass in [0,1] (default from config)")
	fs.IntVar(&f.topK, "top-k", 0, "top-k sampling in [0,500], 0 disables it (default from config)")
	fs.Float64Var(&f.frequencyPenalty, "frequency-penalty", 0, "frequency penalty in [0,1] (default from config)")
	fs.Float64Var(&f.presencePenalty, "presence-penalty", 0, "presence penalty in [0,1] (default from config)")
}

func (f *samplingFlags) apply(fs *pflag.FlagSet, base chat.Sampling) chat.Sampling {
	if fs.Changed("temperature") {
		base.Temperature = f.temperature
	}
	if fs.Changed("top-p") {
		base.TopP = f.topP
	}
	if fs.Changed("top-k") {
		base.TopK = f.topK
	}
	if fs.Changed("frequency-penalty") {
		base.FrequencyPenalty = f.frequencyPenalty
	}
	if fs.Changed("presence-penalty") {
		base.PresencePenalty = f.presencePenalty
	}
	return base
}

func runChat(ctx context.Context, r *runner, args []string) int {
	var (
		common        commonFlags
		sampling      samplingFlags
		message       string
		stream        bool
		echo          bool
		historyFile   string
		documentsFile string
		maxTokens     int
		seed          int
		preamble      string
		noSave        bool
	)
	fs := r.newFlagSet()
	fs.StringVarP(&message, "message", "m", "", "message to send (or pass it as arguments)")
	fs.BoolVarP(&stream, "stream", "s", false, "stream the reply as it is generated")
	fs.BoolVar(&echo, "echo", false, "ask the service to return the rendered prompt")
	fs.StringVar(&historyFile, "history", "", "YAML file with prior turns (list of role/message)")
	fs.StringVar(&documentsFile, "documents", "", "YAML file with grounding documents (list of id/title/snippet/website)")
	fs.IntVar(&maxTokens, "max-tokens", 0, "maximum tokens to generate (default from config)")
	fs.IntVar(&seed, "seed", 0, "seed for best-effort deterministic sampling")
	fs.StringVar(&preamble, "preamble", "", "replace the default preamble")
	fs.BoolVar(&noSave, "no-save", false, "do not store a transcript")
	sampling.register(fs)
	common.register(fs)
	if code := r.parse(fs, args); code >= 0 {
		return code
	}

	if message == "" {
		message = strings.Join(fs.Args(), " ")
	} else if fs.NArg() > 0 {
		return r.usageError(fs, "pass the message either with --message or as arguments, not both")
	}
	if message == "" {
		return r.usageError(fs, "a message is required")
	}

	var history []model.ChatTurn
	if historyFile != "" {
		if err := readYAML(historyFile, &history); err != nil {
			return r.fail(err)
		}
	}
	var documents []model.ReferenceDocument
	if documentsFile != "" {
		if err := readYAML(documentsFile, &documents); err != nil {
			return r.fail(err)
		}
	}

	s, err := r.open(common, !noSave)
	if err != nil {
		return r.fail(err)
	}
	defer s.Close()

	builder := chat.NewBuilder(message).
		WithHistory(history...).
		WithDocuments(documents...).
		WithSampling(sampling.apply(fs, app.Sampling(s.cfg))).
		WithMaxTokens(s.cfg.MaxTokens).
		Streaming(stream).
		Echo(echo).
		WithPreambleOverride(preamble)
	if fs.Changed("max-tokens") {
		builder.WithMaxTokens(maxTokens)
	}
	if fs.Changed("seed") {
		builder.WithSeed(seed)
	}
	req, err := builder.Build()
	if err != nil {
		return r.fail(err)
	}

	provider, err := app.NewProvider(s.cfg, r.signer)
	if err != nil {
		return r.fail(fmt.Errorf("failed to create inference client: %w", err))
	}
	svc := service.NewChatService(s.repository(), provider, app.ModelLabel(s.cfg))

	var onDelta func(string)
	if stream {
		if err := render.StreamHeader(r.stdout); err != nil {
			return r.fail(err)
		}
		onDelta = func(text string) { fmt.Fprint(r.stdout, text) }
	}

	result, err := svc.Send(ctx, req, onDelta)
	if stream {
		fmt.Fprintln(r.stdout)
		fmt.Fprintln(r.stdout)
	}
	if err != nil {
		return r.fail(err)
	}
	if err := render.Result(r.stdout, result); err != nil {
		return r.fail(err)
	}
	return exitOK
}

// readYAML decodes a file strictly into out.
func readYAML(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("could not parse %s: %w", path, err)
	}
	return nil
}
