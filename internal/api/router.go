package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "genai-chat/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(chatHandler *ChatHandler, guardrailHandler *GuardrailHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// JSON routes get a request timeout.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(60 * time.Second))

			r.Post("/guardrails", guardrailHandler.HandleApplyGuardrails)

			r.Get("/transcripts", chatHandler.HandleListTranscripts)
			r.Get("/transcripts/{transcriptID}", chatHandler.HandleGetTranscript)
			r.Delete("/transcripts/{transcriptID}", chatHandler.HandleDeleteTranscript)
		})

		// Chat may stream for minutes; its deadline is the transport's read timeout.
		r.Group(func(r chi.Router) {
			r.Post("/chat", chatHandler.HandleChat)
		})
	})

	return r
}
