package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"genai-chat/internal/api"
	"genai-chat/internal/chat"
	"genai-chat/internal/config"
	"genai-chat/internal/database"
	"genai-chat/internal/llm"
	"genai-chat/internal/repository"
	"genai-chat/internal/service"
)

// App holds the wired components of the HTTP server.
type App struct {
	DB         *sql.DB
	Chat       *service.ChatService
	Guardrails *service.GuardrailService
	Server     *http.Server
}

type options struct {
	signer llm.RequestSigner
}

// Option customizes NewApp.
type Option func(*options)

// WithSigner signs calls with s instead of the OCI config file credentials.
func WithSigner(s llm.RequestSigner) Option {
	return func(o *options) { o.signer = s }
}

// NewProvider resolves credentials and builds the inference client for cfg.
func NewProvider(cfg *config.Config, signer llm.RequestSigner) (llm.Provider, error) {
	region := cfg.OCIRegion
	if signer == nil {
		creds, err := llm.LoadCredentials(cfg.OCIConfigFile, cfg.OCIConfigProfile, cfg.OCIRegion)
		if err != nil {
			return nil, err
		}
		signer = creds.Signer
		region = creds.Region
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		if region == "" {
			return nil, errors.New("no GENAI_ENDPOINT and no OCI region to derive it from")
		}
		endpoint = llm.InferenceEndpoint(region)
	}

	return llm.NewOCIProvider(llm.Options{
		Endpoint:            endpoint,
		CompartmentID:       cfg.CompartmentID,
		ModelID:             cfg.ModelID,
		ServingType:         cfg.ServingMode,
		DedicatedEndpointID: cfg.DedicatedEndpointID,
		ConnectTimeout:      cfg.ConnectTimeout,
		ReadTimeout:         cfg.ReadTimeout,
		Signer:              signer,
	}), nil
}

// Sampling returns the configured default sampling parameters.
func Sampling(cfg *config.Config) chat.Sampling {
	return chat.Sampling{
		Temperature:      cfg.Temperature,
		TopP:             cfg.TopP,
		TopK:             cfg.TopK,
		FrequencyPenalty: cfg.FrequencyPenalty,
		PresencePenalty:  cfg.PresencePenalty,
	}
}

// ModelLabel names what requests are served by: the model id on demand, or
// the endpoint id in dedicated mode.
func ModelLabel(cfg *config.Config) string {
	if cfg.ServingMode == llm.ServingDedicated {
		return cfg.DedicatedEndpointID
	}
	return cfg.ModelID
}

// NewApp wires the database, services and router for cfg.
func NewApp(cfg *config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	provider, err := NewProvider(cfg, o.signer)
	if err != nil {
		return nil, fmt.Errorf("failed to create inference client: %w", err)
	}

	db, err := database.InitDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	slog.Info("Successfully connected to SQLite database.", "path", cfg.DatabasePath)

	repo := repository.NewSQLiteRepository(db)
	chatService := service.NewChatService(repo, provider, ModelLabel(cfg))
	guardrailService := service.NewGuardrailService(provider)

	chatHandler := api.NewChatHandler(chatService, api.ChatDefaults{Sampling: Sampling(cfg), MaxTokens: cfg.MaxTokens})
	guardrailHandler := api.NewGuardrailHandler(guardrailService)
	router := api.NewRouter(chatHandler, guardrailHandler)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.AppPort),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
		WriteTimeout:      0, // Disabled for streaming endpoints
		IdleTimeout:       120 * time.Second,
	}

	return &App{DB: db, Chat: chatService, Guardrails: guardrailService, Server: server}, nil
}

// Run loads the configuration, serves until SIGINT or SIGTERM and returns
// the process exit code.
func Run(configFile string) int {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		// slog is not yet configured, so use the default logger for this critical error.
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	flush := setupLogger(cfg.LogLevel, os.Stdout)
	defer flush()

	logConfigSource(cfg)

	a, err := NewApp(cfg)
	if err != nil {
		slog.Error("Failed to start", "error", err)
		return 1
	}
	defer func() {
		if err := a.DB.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting server", "port", cfg.AppPort, "serving_mode", cfg.ServingMode, "model", ModelLabel(cfg))
		errCh <- a.Server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
		slog.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
			return 1
		}
	}

	return 0
}

func logConfigSource(cfg *config.Config) {
	if cfg.ConfigFileUsed != "" {
		slog.Info("Successfully loaded configuration from file.", "file", cfg.ConfigFileUsed)
	} else {
		slog.Info("Configuration file not found. Using environment variables and defaults.")
	}
}
