package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "genai-chat/internal/errors"
	mock_llm "genai-chat/internal/llm/mocks"
	"genai-chat/internal/model"
	"genai-chat/internal/service"
)

func TestGuardrailService_Apply(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		provider := mock_llm.NewMockProvider(t)
		guardrails := service.NewGuardrailService(provider)
		in := model.GuardrailsInput{Text: "Contact me at someone@example.com", LanguageCode: "en", PIITypes: []string{"EMAIL"}}
		expected := &model.Findings{RequestID: "r1", PII: []model.PIIFinding{{Label: "EMAIL", Text: "someone@example.com", Offset: 14, Length: 19}}}
		provider.On("ApplyGuardrails", ctx, in).Return(expected, nil).Once()

		findings, err := guardrails.Apply(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, expected, findings)
	})

	testCases := []struct {
		name  string
		in    model.GuardrailsInput
		field string
	}{
		{name: "Failure - blank text", in: model.GuardrailsInput{Text: "  ", LanguageCode: "en"}, field: "text"},
		{name: "Failure - bad language code", in: model.GuardrailsInput{Text: "hi", LanguageCode: "not a tag"}, field: "language_code"},
		{name: "Failure - lowercase PII type", in: model.GuardrailsInput{Text: "hi", LanguageCode: "en", PIITypes: []string{"email"}}, field: "pii_types[0]"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			provider := mock_llm.NewMockProvider(t)
			guardrails := service.NewGuardrailService(provider)

			_, err := guardrails.Apply(ctx, tc.in)

			var invalid *app_errors.InvalidParameterError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tc.field, invalid.Field)
			provider.AssertNotCalled(t, "ApplyGuardrails", mock.Anything, mock.Anything)
		})
	}

	t.Run("Failure - transport error", func(t *testing.T) {
		provider := mock_llm.NewMockProvider(t)
		guardrails := service.NewGuardrailService(provider)
		in := model.GuardrailsInput{Text: "hi", LanguageCode: "en"}
		provider.On("ApplyGuardrails", ctx, in).Return(nil, app_errors.ErrTransport).Once()

		_, err := guardrails.Apply(ctx, in)
		assert.ErrorIs(t, err, app_errors.ErrTransport)
	})
}
