package cli

import (
	"context"
	"fmt"
	"strings"

	"genai-chat/internal/app"
	"genai-chat/internal/model"
	"genai-chat/internal/render"
	"genai-chat/internal/service"
)

func runGuardrails(ctx context.Context, r *runner, args []string) int {
	var (
		common commonFlags
		in     model.GuardrailsInput
	)
	fs := r.newFlagSet()
	fs.StringVarP(&in.LanguageCode, "language", "l", "en", "BCP 47 language code of the text")
	fs.StringSliceVar(&in.PIITypes, "pii-types", nil, "PII types to detect, e.g. EMAIL,TELEPHONE_NUMBER (default all)")
	fs.BoolVar(&in.ContentModeration, "content-moderation", false, "score the text for harmful content")
	fs.BoolVar(&in.PromptInjection, "prompt-injection", false, "score the text for prompt injection")
	common.register(fs)
	if code := r.parse(fs, args); code >= 0 {
		return code
	}

	in.Text = strings.Join(fs.Args(), " ")
	if in.Text == "" {
		return r.usageError(fs, "text to screen is required")
	}

	s, err := r.open(common, false)
	if err != nil {
		return r.fail(err)
	}
	defer s.Close()

	provider, err := app.NewProvider(s.cfg, r.signer)
	if err != nil {
		return r.fail(fmt.Errorf("failed to create inference client: %w", err))
	}

	findings, err := service.NewGuardrailService(provider).Apply(ctx, in)
	if err != nil {
		return r.fail(err)
	}
	if err := render.Findings(r.stdout, findings); err != nil {
		return r.fail(err)
	}
	return exitOK
}
