package model

import (
	"time"
)

// Role identifies the author of a chat turn.
type Role string

const (
	RoleSystem  Role = "SYSTEM"
	RoleUser    Role = "USER"
	RoleChatbot Role = "CHATBOT"
)

// ChatTurn is one message in the conversation history.
type ChatTurn struct {
	Role    Role   `json:"role" yaml:"role" validate:"required,oneof=SYSTEM USER CHATBOT"`
	Message string `json:"message" yaml:"message" validate:"required"`
}

// ReferenceDocument is a grounding snippet the model may cite.
type ReferenceDocument struct {
	ID      string `json:"id,omitempty" yaml:"id,omitempty"`
	Title   string `json:"title" yaml:"title"`
	Snippet string `json:"snippet" yaml:"snippet" validate:"required"`
	URL     string `json:"website,omitempty" yaml:"website,omitempty" validate:"omitempty,url"`
}

// FinishReason describes why generation stopped. The service may return
// values outside the known set; they are kept verbatim.
type FinishReason string

const (
	FinishComplete   FinishReason = "COMPLETE"
	FinishMaxTokens  FinishReason = "MAX_TOKENS"
	FinishError      FinishReason = "ERROR"
	FinishErrorToxic FinishReason = "ERROR_TOXIC"
	FinishErrorLimit FinishReason = "ERROR_LIMIT"
	FinishUserCancel FinishReason = "USER_CANCEL"
)

// Citation ties a span of the reply to the documents supporting it.
// Start and End are character offsets into the final text.
type Citation struct {
	DocumentIDs []string `json:"document_ids"`
	Start       int      `json:"start"`
	End         int      `json:"end"`
	Text        string   `json:"text"`
}

// Latency records the timing of one request. TimeToFirstToken is nil when no
// fragment was ever received.
type Latency struct {
	TimeToFirstToken *time.Duration `json:"time_to_first_token,omitempty" swaggertype:"integer"`
	Total            time.Duration  `json:"total" swaggertype:"integer"`
}

// ChatResult is the normalized outcome of a chat request, regardless of
// whether it was streamed.
type ChatResult struct {
	RequestID    string       `json:"request_id"`
	ModelID      string       `json:"model_id,omitempty"`
	ChatHistory  []ChatTurn   `json:"chat_history"`
	Text         string       `json:"text"`
	Citations    []Citation   `json:"citations"`
	FinishReason FinishReason `json:"finish_reason"`
	Prompt       string       `json:"prompt,omitempty"`
	Streamed     bool         `json:"streamed"`
	Latency      Latency      `json:"latency"`
}

// Transcript is a ChatResult persisted together with the message that
// produced it.
type Transcript struct {
	ID           string         `json:"id"`
	ModelID      string         `json:"model_id"`
	Message      string         `json:"message"`
	Streamed     bool           `json:"streamed"`
	Text         string         `json:"text"`
	FinishReason FinishReason   `json:"finish_reason"`
	Prompt       string         `json:"prompt,omitempty"`
	ChatHistory  []ChatTurn     `json:"chat_history"`
	Citations    []Citation     `json:"citations"`
	TimeToFirst  *time.Duration `json:"time_to_first_token,omitempty" swaggertype:"integer"`
	Total        time.Duration  `json:"total" swaggertype:"integer"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewTranscript captures a finished result for storage.
func NewTranscript(message string, r *ChatResult, createdAt time.Time) *Transcript {
	return &Transcript{
		ID:           r.RequestID,
		ModelID:      r.ModelID,
		Message:      message,
		Streamed:     r.Streamed,
		Text:         r.Text,
		FinishReason: r.FinishReason,
		Prompt:       r.Prompt,
		ChatHistory:  r.ChatHistory,
		Citations:    r.Citations,
		TimeToFirst:  r.Latency.TimeToFirstToken,
		Total:        r.Latency.Total,
		CreatedAt:    createdAt,
	}
}

// Result rebuilds the ChatResult a transcript was created from.
func (t *Transcript) Result() *ChatResult {
	return &ChatResult{
		RequestID:    t.ID,
		ModelID:      t.ModelID,
		ChatHistory:  t.ChatHistory,
		Text:         t.Text,
		Citations:    t.Citations,
		FinishReason: t.FinishReason,
		Prompt:       t.Prompt,
		Streamed:     t.Streamed,
		Latency:      Latency{TimeToFirstToken: t.TimeToFirst, Total: t.Total},
	}
}
