package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"genai-chat/internal/chat"
	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/interfaces"
)

const defaultListLimit = 20

// ChatDefaults are applied to chat requests that leave a field unset.
type ChatDefaults struct {
	Sampling  chat.Sampling
	MaxTokens int
}

// ChatHandler serves chat and transcript endpoints.
type ChatHandler struct {
	service  interfaces.ChatService
	defaults ChatDefaults
}

func NewChatHandler(svc interfaces.ChatService, defaults ChatDefaults) *ChatHandler {
	if defaults.MaxTokens <= 0 {
		defaults.MaxTokens = chat.DefaultMaxTokens
	}
	return &ChatHandler{service: svc, defaults: defaults}
}

func (h *ChatHandler) buildRequest(body *ChatRequest) (*chat.Request, error) {
	maxTokens := h.defaults.MaxTokens
	if body.MaxTokens != nil {
		maxTokens = *body.MaxTokens
	}
	b := chat.NewBuilder(body.Message).
		WithHistory(body.ChatHistory...).
		WithDocuments(body.Documents...).
		WithSampling(body.Sampling.apply(h.defaults.Sampling)).
		WithMaxTokens(maxTokens).
		Streaming(body.Stream).
		Echo(body.Echo).
		WithPreambleOverride(body.PreambleOverride)
	if body.Seed != nil {
		b = b.WithSeed(*body.Seed)
	}
	return b.Build()
}

// HandleChat godoc
// @Summary      Send a chat message
// @Description  Runs one chat request. With "stream": false the result is returned as JSON. With "stream": true the response is a text/event-stream of `data: {"text": ...}` deltas followed by one `event: result` carrying the ChatResult, or an `event: error`.
// @Tags         Chat
// @Accept       json
// @Produce      json,text/event-stream
// @Param        chatRequest  body      ChatRequest  true  "Chat request"
// @Success      200          {object}  model.ChatResult
// @Failure      400          {object}  ErrorResponse
// @Failure      502          {object}  ErrorResponse
// @Failure      504          {object}  ErrorResponse
// @Router       /v1/chat [post]
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var body ChatRequest
	if err := decodeJSON(r, &body); err != nil {
		respondWithError(w, err)
		return
	}
	req, err := h.buildRequest(&body)
	if err != nil {
		respondWithError(w, err)
		return
	}

	if !req.Stream() {
		result, err := h.service.Send(r.Context(), req, nil)
		if err != nil {
			respondWithError(w, err)
			return
		}
		respondWithJSON(w, http.StatusOK, result)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Cancelling ctx closes the upstream stream once the client is gone.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	clientGone := false
	onDelta := func(text string) {
		if clientGone {
			return
		}
		if err := writeStreamEvent(w, TextDeltaEvent{Text: text}); err != nil {
			slog.Warn("Could not write to chat stream, client likely disconnected.", "error", err)
			clientGone = true
			cancel()
		}
	}

	result, err := h.service.Send(ctx, req, onDelta)
	if clientGone || r.Context().Err() != nil {
		slog.Info("Client disconnected during chat stream.")
		return
	}
	if err != nil {
		_, message := errorStatus(err)
		sendStreamError(w, message)
		return
	}
	if err := writeNamedEvent(w, "result", result); err != nil {
		slog.Warn("Could not write chat result, client likely disconnected.", "error", err)
		return
	}
	slog.Info("Finished streaming chat response.", "request_id", result.RequestID)
}

// HandleListTranscripts godoc
// @Summary      List transcripts
// @Description  Lists stored chat transcripts, newest first.
// @Tags         Transcripts
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of transcripts (0 for all)"  default(20)
// @Success      200    {array}   model.Transcript
// @Failure      400    {object}  ErrorResponse
// @Failure      500    {object}  ErrorResponse
// @Router       /v1/transcripts [get]
func (h *ChatHandler) HandleListTranscripts(w http.ResponseWriter, r *http.Request) {
	query := ListTranscriptsQuery{Limit: defaultListLimit}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, fmt.Errorf("%w: Field 'limit' must be an integer", app_errors.ErrValidation))
			return
		}
		query.Limit = limit
	}
	if err := validateRequest(query); err != nil {
		respondWithError(w, err)
		return
	}

	transcripts, err := h.service.ListTranscripts(r.Context(), query.Limit)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, transcripts)
}

// HandleGetTranscript godoc
// @Summary      Get a transcript
// @Tags         Transcripts
// @Produce      json
// @Param        transcriptID  path      string  true  "Transcript ID (the request id)"
// @Success      200           {object}  model.Transcript
// @Failure      404           {object}  ErrorResponse
// @Router       /v1/transcripts/{transcriptID} [get]
func (h *ChatHandler) HandleGetTranscript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transcriptID")
	transcript, err := h.service.GetTranscript(r.Context(), id)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, transcript)
}

// HandleDeleteTranscript godoc
// @Summary      Delete a transcript
// @Tags         Transcripts
// @Produce      json
// @Param        transcriptID  path      string  true  "Transcript ID"
// @Success      200           {object}  StatusResponse
// @Failure      404           {object}  ErrorResponse
// @Router       /v1/transcripts/{transcriptID} [delete]
func (h *ChatHandler) HandleDeleteTranscript(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "transcriptID")
	if err := h.service.DeleteTranscript(r.Context(), id); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
