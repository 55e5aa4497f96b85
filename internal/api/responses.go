package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/bytedance/sonic"

	"genai-chat/internal/chat"
	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/model"
)

// This file contains the DTOs for API requests and responses and the helpers
// that write them.

// ErrorResponse defines the standard JSON structure for error messages.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is returned by operations that have no resource to show.
type StatusResponse struct {
	Status string `json:"status"`
}

// ChatRequest is the body of POST /v1/chat. Omitted sampling fields and
// max_tokens fall back to the server defaults.
type ChatRequest struct {
	Message          string                    `json:"message" example:"Tell me something about Oracle Database."`
	ChatHistory      []model.ChatTurn          `json:"chat_history"`
	Documents        []model.ReferenceDocument `json:"documents"`
	Sampling         *SamplingRequest          `json:"sampling"`
	MaxTokens        *int                      `json:"max_tokens" example:"500"`
	Stream           bool                      `json:"stream"`
	Echo             bool                      `json:"echo"`
	PreambleOverride string                    `json:"preamble_override"`
	Seed             *int                      `json:"seed"`
}

// SamplingRequest overrides individual sampling parameters.
type SamplingRequest struct {
	Temperature      *float64 `json:"temperature" example:"0.75"`
	TopP             *float64 `json:"top_p" example:"0.7"`
	TopK             *int     `json:"top_k" example:"0"`
	FrequencyPenalty *float64 `json:"frequency_penalty" example:"1"`
	PresencePenalty  *float64 `json:"presence_penalty" example:"0"`
}

func (s *SamplingRequest) apply(base chat.Sampling) chat.Sampling {
	if s == nil {
		return base
	}
	if s.Temperature != nil {
		base.Temperature = *s.Temperature
	}
	if s.TopP != nil {
		base.TopP = *s.TopP
	}
	if s.TopK != nil {
		base.TopK = *s.TopK
	}
	if s.FrequencyPenalty != nil {
		base.FrequencyPenalty = *s.FrequencyPenalty
	}
	if s.PresencePenalty != nil {
		base.PresencePenalty = *s.PresencePenalty
	}
	return base
}

// TextDeltaEvent is the payload of every streamed text event.
type TextDeltaEvent struct {
	Text string `json:"text"`
}

// ListTranscriptsQuery holds the query parameters of GET /v1/transcripts.
type ListTranscriptsQuery struct {
	Limit int `json:"limit" validate:"gte=0,lte=1000"`
}

// errorStatus maps a service error to an HTTP status and a client message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, app_errors.ErrInvalidParameter), errors.Is(err, app_errors.ErrValidation):
		// These messages are built from field names and are safe to show.
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, app_errors.ErrNotFound):
		return http.StatusNotFound, "The requested resource was not found."
	case errors.Is(err, app_errors.ErrTimeout):
		return http.StatusGatewayTimeout, "The inference service did not answer in time."
	case errors.Is(err, app_errors.ErrRemote):
		var rerr *app_errors.RemoteError
		if errors.As(err, &rerr) {
			return http.StatusBadGateway, rerr.Error()
		}
		return http.StatusBadGateway, "The inference service returned an error."
	case errors.Is(err, app_errors.ErrTransport):
		return http.StatusBadGateway, "Could not reach the inference service."
	case errors.Is(err, app_errors.ErrProtocolViolation):
		return http.StatusBadGateway, "The inference service sent a malformed response."
	default:
		return http.StatusInternalServerError, "An unexpected internal server error occurred."
	}
}

// respondWithError is the centralized error handling function for the API
// layer. The full error is logged; the client sees the mapped message.
func respondWithError(w http.ResponseWriter, err error) {
	statusCode, message := errorStatus(err)
	slog.Warn("Responding with error", "status_code", statusCode, "client_message", message, "internal_error", err)
	respondWithJSON(w, statusCode, ErrorResponse{Error: message})
}

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := sonic.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}

// sendStreamError sends an `event: error` message over an SSE stream.
func sendStreamError(w http.ResponseWriter, message string) {
	slog.Warn("Sending stream error to client", "message", message)
	if err := writeNamedEvent(w, "error", ErrorResponse{Error: message}); err != nil {
		slog.Warn("Failed to write stream error, client might have disconnected", "error", err)
	}
}

// writeStreamEvent marshals data into an unnamed SSE event and flushes it.
// It returns an error on write failure, which means the client is gone.
func writeStreamEvent(w http.ResponseWriter, data any) error {
	return writeNamedEvent(w, "", data)
}

func writeNamedEvent(w http.ResponseWriter, event string, data any) error {
	jsonData, err := sonic.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal stream data to JSON", "error", err)
		return nil
	}

	if event != "" {
		if _, err := fmt.Fprintf(w, "event: %s\n", event); err != nil {
			return fmt.Errorf("failed to write event to stream: %w", err)
		}
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", jsonData); err != nil {
		return fmt.Errorf("failed to write data to stream: %w", err)
	}

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// decodeJSON reads a request body into v.
func decodeJSON(r *http.Request, v any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation)
	}
	return nil
}
