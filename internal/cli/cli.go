// Package cli implements the genai-chat command line client.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/pflag"

	"genai-chat/internal/app"
	"genai-chat/internal/config"
	"genai-chat/internal/database"
	"genai-chat/internal/llm"
	"genai-chat/internal/repository"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

type command struct {
	name    string
	args    string
	summary string
	run     func(ctx context.Context, r *runner, args []string) int
}

var commands = []command{
	{"chat", "[flags] MESSAGE", "Send a chat message and print the reply", runChat},
	{"guardrails", "[flags] TEXT", "Screen text for PII, harmful content and prompt injection", runGuardrails},
	{"transcripts", "[flags]", "List stored transcripts, newest first", runTranscripts},
	{"transcript", "[flags] ID", "Print or delete one stored transcript", runTranscript},
}

type options struct {
	signer llm.RequestSigner
}

// Option customizes Run.
type Option func(*options)

// WithSigner signs calls with s instead of the OCI config file credentials.
func WithSigner(s llm.RequestSigner) Option {
	return func(o *options) { o.signer = s }
}

// Run executes the command named by args[0] and returns the process exit code.
func Run(args []string, stdout, stderr io.Writer, opts ...Option) int {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if len(args) == 0 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "help", "-h", "--help":
		usage(stdout)
		return exitOK
	}

	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		r := &runner{stdout: stdout, stderr: stderr, signer: o.signer, cmd: cmd}
		return cmd.run(ctx, r, args[1:])
	}

	fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
	usage(stderr)
	return exitUsage
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: genai-chat <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-12s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, `Run "genai-chat <command> --help" for the flags of a command.`)
}

// runner carries the process streams through a command.
type runner struct {
	stdout io.Writer
	stderr io.Writer
	signer llm.RequestSigner
	cmd    command
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configFile string
	logLevel   string
}

func (c *commonFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&c.configFile, "config", "c", "", "config file (defaults to ./config.yaml when present)")
	fs.StringVar(&c.logLevel, "log-level", "", "level of diagnostics written to stderr (default LOG_LEVEL from config)")
}

func (r *runner) newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(r.cmd.name, pflag.ContinueOnError)
	fs.SetOutput(r.stderr)
	fs.SortFlags = false
	fs.Usage = func() {
		fmt.Fprintf(r.stderr, "Usage: genai-chat %s %s\n\n%s.\n\nFlags:\n", r.cmd.name, r.cmd.args, r.cmd.summary)
		fs.PrintDefaults()
	}
	return fs
}

// parse returns the exit code to stop with, or -1 to carry on.
func (r *runner) parse(fs *pflag.FlagSet, args []string) int {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	return -1
}

func (r *runner) usageError(fs *pflag.FlagSet, format string, args ...any) int {
	fmt.Fprintf(r.stderr, format+"\n\n", args...)
	fs.Usage()
	return exitUsage
}

func (r *runner) fail(err error) int {
	fmt.Fprintf(r.stderr, "Error: %v\n", err)
	return exitFailure
}

// session holds what a command opened and must release.
type session struct {
	cfg   *config.Config
	db    *sql.DB
	flush func()
}

func (r *runner) open(common commonFlags, withDB bool) (*session, error) {
	cfg, err := config.LoadConfig(common.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if common.logLevel != "" {
		cfg.LogLevel = strings.ToUpper(common.logLevel)
	}

	logger, flush := app.NewLogger(cfg.LogLevel, r.stderr)
	slog.SetDefault(logger)
	s := &session{cfg: cfg, flush: flush}

	if withDB {
		db, err := database.InitDB(cfg.DatabasePath)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.db = db
	}
	return s, nil
}

func (s *session) repository() repository.Repository {
	if s.db == nil {
		return nil
	}
	return repository.NewSQLiteRepository(s.db)
}

func (s *session) Close() {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}
	s.flush()
}
