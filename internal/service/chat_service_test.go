package service_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"genai-chat/internal/chat"
	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/llm"
	mock_llm "genai-chat/internal/llm/mocks"
	"genai-chat/internal/model"
	"genai-chat/internal/repository"
	mock_repo "genai-chat/internal/repository/mocks"
	"genai-chat/internal/service"
)

const testModelID = "cohere.command-r-plus"

type Mocks struct {
	repo *mock_repo.MockRepository
	llm  *mock_llm.MockProvider
}

func setupChatService(t *testing.T) (*service.ChatService, Mocks) {
	mocks := Mocks{
		repo: mock_repo.NewMockRepository(t),
		llm:  mock_llm.NewMockProvider(t),
	}
	return service.NewChatService(mocks.repo, mocks.llm, testModelID), mocks
}

func newRequest(t *testing.T, stream bool) *chat.Request {
	t.Helper()
	req, err := chat.NewBuilder("Tell me something about Oracle.").Streaming(stream).Build()
	require.NoError(t, err)
	return req
}

func eventStream(events ...string) *llm.EventStream {
	var body strings.Builder
	for _, e := range events {
		body.WriteString("data: " + e + "\n\n")
	}
	return llm.NewEventStream(io.NopCloser(strings.NewReader(body.String())), "stream-id")
}

func strPtr(s string) *string { return &s }

func TestChatService_Send_Sync(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		chatService, mocks := setupChatService(t)
		req := newRequest(t, false)
		mocks.llm.On("Chat", mock.Anything, req).Return(&llm.ChatResponse{
			RequestID: "ignored",
			ModelID:   "cohere.command-r-16k",
			Final: model.Final{
				FinishReason: model.FinishComplete,
				Text:         strPtr("Hello world"),
				ChatHistory:  []model.ChatTurn{{Role: model.RoleChatbot, Message: "Hello world"}},
			},
		}, nil).Once()

		var saved *model.Transcript
		mocks.repo.On("SaveTranscript", mock.Anything, mock.AnythingOfType("*model.Transcript")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*model.Transcript) }).
			Return(nil).Once()

		deltaCalls := 0

		// ACT
		result, err := chatService.Send(ctx, req, func(string) { deltaCalls++ })

		// ASSERT
		require.NoError(t, err)
		assert.Zero(t, deltaCalls, "the synchronous path never reports deltas")
		assert.NotEmpty(t, result.RequestID)
		assert.False(t, result.Streamed)
		assert.Equal(t, "cohere.command-r-16k", result.ModelID)
		assert.Equal(t, "Hello world", result.Text)
		assert.Equal(t, model.FinishComplete, result.FinishReason)
		assert.NotNil(t, result.Citations)
		require.NotNil(t, result.Latency.TimeToFirstToken)
		assert.Equal(t, result.Latency.Total, *result.Latency.TimeToFirstToken)

		require.NotNil(t, saved)
		assert.Equal(t, result.RequestID, saved.ID)
		assert.Equal(t, "Tell me something about Oracle.", saved.Message)
		assert.Equal(t, "Hello world", saved.Text)
	})

	t.Run("Failure - remote error is returned unchanged", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		req := newRequest(t, false)
		remote := &app_errors.RemoteError{StatusCode: 429, Code: "TooManyRequests"}
		mocks.llm.On("Chat", mock.Anything, req).Return(nil, remote).Once()

		result, err := chatService.Send(ctx, req, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, app_errors.ErrRemote)
		mocks.repo.AssertNotCalled(t, "SaveTranscript", mock.Anything, mock.Anything)
	})

	t.Run("Success - storage failure does not fail the chat", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		req := newRequest(t, false)
		mocks.llm.On("Chat", mock.Anything, req).Return(&llm.ChatResponse{
			Final: model.Final{FinishReason: model.FinishMaxTokens, Text: strPtr("Hello")},
		}, nil).Once()
		mocks.repo.On("SaveTranscript", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		result, err := chatService.Send(ctx, req, nil)

		require.NoError(t, err)
		assert.Equal(t, model.FinishMaxTokens, result.FinishReason)
		assert.Equal(t, testModelID, result.ModelID)
	})
}

func TestChatService_Send_Stream(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		chatService, mocks := setupChatService(t)
		req := newRequest(t, true)
		mocks.llm.On("ChatStream", mock.Anything, req).Return(eventStream(
			`{"text":"Hello "}`,
			`{"text":"world"}`,
			`{"finishReason":"COMPLETE","citations":[{"start":0,"end":5,"text":"Hello","documentIds":["doc_0"]}]}`,
		), nil).Once()
		mocks.repo.On("SaveTranscript", mock.Anything, mock.MatchedBy(func(t *model.Transcript) bool {
			return t.Streamed && t.Text == "Hello world"
		})).Return(nil).Once()

		var deltas []string

		// ACT
		result, err := chatService.Send(ctx, req, func(text string) { deltas = append(deltas, text) })

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, []string{"Hello ", "world"}, deltas)
		assert.Equal(t, "Hello world", result.Text)
		assert.True(t, result.Streamed)
		assert.Equal(t, testModelID, result.ModelID)
		require.Len(t, result.Citations, 1)
		assert.Equal(t, "Hello", result.Text[result.Citations[0].Start:result.Citations[0].End])
	})

	t.Run("Success - nil delta handler", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		req := newRequest(t, true)
		mocks.llm.On("ChatStream", mock.Anything, req).Return(eventStream(
			`{"text":"Hi"}`,
			`{"finishReason":"COMPLETE"}`,
		), nil).Once()
		mocks.repo.On("SaveTranscript", mock.Anything, mock.Anything).Return(nil).Once()

		result, err := chatService.Send(ctx, req, nil)
		require.NoError(t, err)
		assert.Equal(t, "Hi", result.Text)
	})

	t.Run("Failure - stream ends before final fragment", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		req := newRequest(t, true)
		mocks.llm.On("ChatStream", mock.Anything, req).Return(eventStream(`{"text":"Hel"}`), nil).Once()

		var deltas []string
		result, err := chatService.Send(ctx, req, func(text string) { deltas = append(deltas, text) })

		assert.Nil(t, result)
		assert.ErrorIs(t, err, app_errors.ErrProtocolViolation)
		assert.Equal(t, []string{"Hel"}, deltas)
		mocks.repo.AssertNotCalled(t, "SaveTranscript", mock.Anything, mock.Anything)
	})

	t.Run("Failure - citation beyond the reply", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		req := newRequest(t, true)
		mocks.llm.On("ChatStream", mock.Anything, req).Return(eventStream(
			`{"text":"日本語"}`,
			`{"finishReason":"COMPLETE","citations":[{"start":0,"end":9,"text":"日本語","documentIds":["doc_0"]}]}`,
		), nil).Once()

		result, err := chatService.Send(ctx, req, nil)

		assert.Nil(t, result)
		assert.ErrorIs(t, err, app_errors.ErrProtocolViolation)
		mocks.repo.AssertNotCalled(t, "SaveTranscript", mock.Anything, mock.Anything)
	})

	t.Run("Failure - stream could not be opened", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		req := newRequest(t, true)
		mocks.llm.On("ChatStream", mock.Anything, req).Return(nil, app_errors.ErrTimeout).Once()

		_, err := chatService.Send(ctx, req, nil)
		assert.ErrorIs(t, err, app_errors.ErrTimeout)
	})
}

func TestChatService_Send_WithoutRepository(t *testing.T) {
	provider := mock_llm.NewMockProvider(t)
	chatService := service.NewChatService(nil, provider, testModelID)
	req := newRequest(t, false)
	provider.On("Chat", mock.Anything, req).Return(&llm.ChatResponse{
		Final: model.Final{FinishReason: model.FinishComplete, Text: strPtr("ok")},
	}, nil).Once()

	result, err := chatService.Send(context.Background(), req, nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Text)

	list, err := chatService.ListTranscripts(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestChatService_Transcripts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - list", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		expected := []*model.Transcript{{ID: "a"}, {ID: "b"}}
		mocks.repo.On("ListTranscripts", ctx, 20).Return(expected, nil).Once()

		got, err := chatService.ListTranscripts(ctx, 20)
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("Success - get", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		expected := &model.Transcript{ID: "a"}
		mocks.repo.On("GetTranscript", ctx, "a").Return(expected, nil).Once()

		got, err := chatService.GetTranscript(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, expected, got)
	})

	t.Run("Failure - get translates not found", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		mocks.repo.On("GetTranscript", ctx, "missing").Return(nil, repository.ErrNotFound).Once()

		_, err := chatService.GetTranscript(ctx, "missing")
		assert.ErrorIs(t, err, app_errors.ErrNotFound)
		assert.NotErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Failure - delete propagates database errors", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		mocks.repo.On("DeleteTranscript", ctx, "a").Return(errors.New("db error")).Once()

		err := chatService.DeleteTranscript(ctx, "a")
		assert.ErrorContains(t, err, "db error")
		assert.NotErrorIs(t, err, app_errors.ErrNotFound)
	})

	t.Run("Failure - delete translates not found", func(t *testing.T) {
		chatService, mocks := setupChatService(t)
		mocks.repo.On("DeleteTranscript", ctx, "missing").Return(repository.ErrNotFound).Once()

		assert.ErrorIs(t, chatService.DeleteTranscript(ctx, "missing"), app_errors.ErrNotFound)
	})
}
