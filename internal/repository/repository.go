package repository

import (
	"context"

	"genai-chat/internal/model"
)

// Repository defines the interface for transcript storage operations.
type Repository interface {
	SaveTranscript(ctx context.Context, t *model.Transcript) error
	GetTranscript(ctx context.Context, id string) (*model.Transcript, error)
	// ListTranscripts returns the newest transcripts first. limit <= 0 means no limit.
	ListTranscripts(ctx context.Context, limit int) ([]*model.Transcript, error)
	DeleteTranscript(ctx context.Context, id string) error
}
