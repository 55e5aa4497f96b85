package chat_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-chat/internal/chat"
	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/model"
)

func TestBuilder_Build(t *testing.T) {
	t.Run("Success - Defaults", func(t *testing.T) {
		req, err := chat.NewBuilder("Tell me about relational databases.").Build()
		require.NoError(t, err)

		assert.Equal(t, "Tell me about relational databases.", req.Message())
		assert.Equal(t, chat.DefaultSampling(), req.Sampling())
		assert.Equal(t, chat.DefaultMaxTokens, req.MaxTokens())
		assert.False(t, req.Stream())
		assert.False(t, req.Echo())
		assert.Empty(t, req.History())
		assert.Empty(t, req.Documents())
		assert.Nil(t, req.Seed())
	})

	t.Run("Success - Full request", func(t *testing.T) {
		req, err := chat.NewBuilder("What is Oracle Database?").
			WithHistory(
				model.ChatTurn{Role: model.RoleSystem, Message: "You are a technical writer."},
				model.ChatTurn{Role: model.RoleUser, Message: "What kind of company is Oracle?"},
				model.ChatTurn{Role: model.RoleChatbot, Message: "One of the largest enterprise IT vendors."},
			).
			WithDocuments(model.ReferenceDocument{Title: "Oracle", Snippet: "Converged database.", URL: "https://www.oracle.com/database/"}).
			WithSampling(chat.Sampling{Temperature: 0.2, TopP: 0.9, TopK: 500, FrequencyPenalty: 0.5}).
			WithMaxTokens(1000).
			WithSeed(7).
			Streaming(true).
			Echo(true).
			Build()
		require.NoError(t, err)

		assert.Len(t, req.History(), 3)
		assert.Equal(t, model.RoleChatbot, req.History()[2].Role)
		assert.Len(t, req.Documents(), 1)
		assert.Equal(t, 500, req.Sampling().TopK)
		assert.Equal(t, 1000, req.MaxTokens())
		assert.True(t, req.Stream())
		assert.True(t, req.Echo())
		require.NotNil(t, req.Seed())
		assert.Equal(t, 7, *req.Seed())
	})

	testCases := []struct {
		name          string
		builder       *chat.Builder
		expectedField string
	}{
		{
			name:          "Empty message",
			builder:       chat.NewBuilder(""),
			expectedField: "message",
		},
		{
			name:          "Blank message",
			builder:       chat.NewBuilder(" \t\n"),
			expectedField: "message",
		},
		{
			name:          "top_k above range",
			builder:       chat.NewBuilder("hi").WithSampling(chat.Sampling{TopK: 501}),
			expectedField: "sampling.top_k",
		},
		{
			name:          "top_k below range",
			builder:       chat.NewBuilder("hi").WithSampling(chat.Sampling{TopK: -1}),
			expectedField: "sampling.top_k",
		},
		{
			name:          "Temperature above range",
			builder:       chat.NewBuilder("hi").WithSampling(chat.Sampling{Temperature: 1.5}),
			expectedField: "sampling.temperature",
		},
		{
			name:          "Negative max tokens",
			builder:       chat.NewBuilder("hi").WithMaxTokens(-10),
			expectedField: "max_tokens",
		},
		{
			name:          "Zero max tokens",
			builder:       chat.NewBuilder("hi").WithMaxTokens(0),
			expectedField: "max_tokens",
		},
		{
			name:          "Unknown role in history",
			builder:       chat.NewBuilder("hi").WithHistory(model.ChatTurn{Role: model.RoleUser, Message: "a"}, model.ChatTurn{Role: "ASSISTANT", Message: "b"}),
			expectedField: "chat_history[1].role",
		},
		{
			name:          "Document without snippet",
			builder:       chat.NewBuilder("hi").WithDocuments(model.ReferenceDocument{Title: "empty"}),
			expectedField: "documents[0].snippet",
		},
		{
			name:          "Document with malformed URL",
			builder:       chat.NewBuilder("hi").WithDocuments(model.ReferenceDocument{Snippet: "s", URL: "not a url"}),
			expectedField: "documents[0].website",
		},
	}

	for _, tc := range testCases {
		t.Run("Failure - "+tc.name, func(t *testing.T) {
			req, err := tc.builder.Build()
			require.Error(t, err)
			assert.Nil(t, req)
			assert.True(t, errors.Is(err, app_errors.ErrInvalidParameter))

			var ipe *app_errors.InvalidParameterError
			require.True(t, errors.As(err, &ipe))
			assert.Equal(t, tc.expectedField, ipe.Field)
		})
	}
}

func TestRequest_IsImmutable(t *testing.T) {
	turns := []model.ChatTurn{{Role: model.RoleUser, Message: "first"}}
	b := chat.NewBuilder("hi").WithHistory(turns...)
	req, err := b.Build()
	require.NoError(t, err)

	// Mutating the caller's slice, the builder, or an accessor's copy must not leak into the request.
	turns[0].Message = "changed"
	b.WithHistory(model.ChatTurn{Role: model.RoleUser, Message: "second"})
	history := req.History()
	history[0].Message = "changed again"

	assert.Equal(t, []model.ChatTurn{{Role: model.RoleUser, Message: "first"}}, req.History())
}
