package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"genai-chat/internal/chat"
	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/llm"
	"genai-chat/internal/model"
	"genai-chat/internal/repository"
)

type ChatService struct {
	repo    repository.Repository
	llm     llm.Provider
	modelID string
	now     func() time.Time
}

// NewChatService creates a ChatService. modelID is reported on results when
// the service response does not name the model (always the case when
// streaming). repo may be nil, in which case nothing is persisted.
func NewChatService(repo repository.Repository, provider llm.Provider, modelID string) *ChatService {
	return &ChatService{repo: repo, llm: provider, modelID: modelID, now: time.Now}
}

// Send runs one chat request to completion. A streaming request delivers
// every text delta to onDelta, in order, before Send returns; a synchronous
// request never calls it. Both paths produce the same ChatResult shape.
func (s *ChatService) Send(ctx context.Context, req *chat.Request, onDelta func(text string)) (*model.ChatResult, error) {
	requestID := uuid.NewString()
	ctx = llm.WithRequestID(ctx, requestID)
	logger := slog.With("request_id", requestID, "stream", req.Stream())
	started := s.now()

	var result *model.ChatResult
	var err error
	if req.Stream() {
		result, err = s.sendStream(ctx, req, onDelta, started, logger)
	} else {
		result, err = s.sendSync(ctx, req, started, logger)
	}
	if err != nil {
		logger.Error("Chat request failed", "error", err)
		return nil, err
	}

	result.RequestID = requestID
	result.Streamed = req.Stream()
	if result.ModelID == "" {
		result.ModelID = s.modelID
	}
	logger.Info("Chat request completed",
		"finish_reason", result.FinishReason,
		"text_length", len(result.Text),
		"total", result.Latency.Total,
	)

	s.saveTranscript(ctx, req.Message(), result, logger)
	return result, nil
}

func (s *ChatService) sendSync(ctx context.Context, req *chat.Request, started time.Time, logger *slog.Logger) (*model.ChatResult, error) {
	resp, err := s.llm.Chat(ctx, req)
	if err != nil {
		return nil, err
	}
	asm := chat.NewAssembler(chat.WithStartTime(started), chat.WithClock(s.now), chat.WithLogger(logger))
	if err := asm.HandleResponse(resp.Final); err != nil {
		return nil, err
	}
	result, err := asm.Finish()
	if err != nil {
		return nil, err
	}
	result.ModelID = resp.ModelID
	return result, nil
}

func (s *ChatService) sendStream(ctx context.Context, req *chat.Request, onDelta func(string), started time.Time, logger *slog.Logger) (*model.ChatResult, error) {
	events, err := s.llm.ChatStream(ctx, req)
	if err != nil {
		return nil, err
	}
	opts := []chat.Option{chat.WithStartTime(started), chat.WithClock(s.now), chat.WithLogger(logger)}
	if onDelta != nil {
		opts = append(opts, chat.WithDeltaHandler(onDelta))
	}
	return chat.Collect(events, opts...)
}

// saveTranscript persists a finished result. A storage failure is logged
// and does not fail the chat: the caller already has the answer.
func (s *ChatService) saveTranscript(ctx context.Context, message string, result *model.ChatResult, logger *slog.Logger) {
	if s.repo == nil {
		return
	}
	t := model.NewTranscript(message, result, s.now().UTC())
	if err := s.repo.SaveTranscript(context.WithoutCancel(ctx), t); err != nil {
		logger.Error("Failed to save transcript", "error", err)
	}
}

// ListTranscripts returns the newest stored transcripts first.
func (s *ChatService) ListTranscripts(ctx context.Context, limit int) ([]*model.Transcript, error) {
	if s.repo == nil {
		return []*model.Transcript{}, nil
	}
	transcripts, err := s.repo.ListTranscripts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("could not list transcripts: %w", err)
	}
	return transcripts, nil
}

func (s *ChatService) GetTranscript(ctx context.Context, id string) (*model.Transcript, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("%w: transcript %s", app_errors.ErrNotFound, id)
	}
	t, err := s.repo.GetTranscript(ctx, id)
	if err != nil {
		return nil, translateRepoError(err, id)
	}
	return t, nil
}

func (s *ChatService) DeleteTranscript(ctx context.Context, id string) error {
	if s.repo == nil {
		return fmt.Errorf("%w: transcript %s", app_errors.ErrNotFound, id)
	}
	slog.Info("Deleting transcript", "id", id)
	if err := s.repo.DeleteTranscript(ctx, id); err != nil {
		return translateRepoError(err, id)
	}
	return nil
}

func translateRepoError(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: transcript %s", app_errors.ErrNotFound, id)
	}
	return fmt.Errorf("transcript %s: %w", id, err)
}
