package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"genai-chat/internal/api"
	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/interfaces/mocks"
	"genai-chat/internal/model"
)

func setupGuardrailHandler(t *testing.T) (*api.GuardrailHandler, *mocks.MockGuardrailService) {
	mockSvc := mocks.NewMockGuardrailService(t)
	return api.NewGuardrailHandler(mockSvc), mockSvc
}

func TestGuardrailHandler_HandleApplyGuardrails(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockSvc := setupGuardrailHandler(t)
		score := 0.02
		expected := &model.Findings{
			RequestID:       "r1",
			PII:             []model.PIIFinding{{Label: "EMAIL", Text: "a@b.co", Offset: 3, Length: 6, Score: 0.9}},
			PromptInjection: &score,
		}
		mockSvc.On("Apply", mock.Anything, model.GuardrailsInput{
			Text: "Hi a@b.co", LanguageCode: "en", PIITypes: []string{"EMAIL"}, PromptInjection: true,
		}).Return(expected, nil).Once()

		reqBody := `{"text":"Hi a@b.co","language_code":"en","pii_types":["EMAIL"],"prompt_injection":true}`
		req := httptest.NewRequest(http.MethodPost, "/v1/guardrails", strings.NewReader(reqBody))
		rr := httptest.NewRecorder()
		handler.HandleApplyGuardrails(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var got model.Findings
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, *expected, got)
	})

	t.Run("Failure - Invalid parameter", func(t *testing.T) {
		handler, mockSvc := setupGuardrailHandler(t)
		mockSvc.On("Apply", mock.Anything, mock.Anything).
			Return(nil, &app_errors.InvalidParameterError{Field: "language_code", Rule: "bcp47_language_tag"}).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/guardrails", strings.NewReader(`{"text":"x","language_code":"??"}`))
		rr := httptest.NewRecorder()
		handler.HandleApplyGuardrails(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "language_code")
	})

	t.Run("Failure - Bad JSON", func(t *testing.T) {
		handler, _ := setupGuardrailHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/v1/guardrails", strings.NewReader(`{"text":`))
		rr := httptest.NewRecorder()
		handler.HandleApplyGuardrails(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
