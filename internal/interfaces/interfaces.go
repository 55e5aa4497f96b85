package interfaces

import (
	"context"

	"genai-chat/internal/chat"
	"genai-chat/internal/model"
)

// This file defines the interfaces for the core services. The API layer and
// the CLI depend on these rather than on the concrete services so they can be
// tested against mocks.

// ChatService runs chat requests and manages their stored transcripts.
type ChatService interface {
	Send(ctx context.Context, req *chat.Request, onDelta func(text string)) (*model.ChatResult, error)
	ListTranscripts(ctx context.Context, limit int) ([]*model.Transcript, error)
	GetTranscript(ctx context.Context, id string) (*model.Transcript, error)
	DeleteTranscript(ctx context.Context, id string) error
}

// GuardrailService screens text through the guardrails endpoint.
type GuardrailService interface {
	Apply(ctx context.Context, in model.GuardrailsInput) (*model.Findings, error)
}
