package api

import (
	"net/http"

	"genai-chat/internal/interfaces"
	"genai-chat/internal/model"
)

// GuardrailHandler serves the guardrails endpoint.
type GuardrailHandler struct {
	service interfaces.GuardrailService
}

func NewGuardrailHandler(svc interfaces.GuardrailService) *GuardrailHandler {
	return &GuardrailHandler{service: svc}
}

// HandleApplyGuardrails godoc
// @Summary      Screen text with guardrails
// @Description  Detects PII and, when enabled, scores harmful content and prompt injection.
// @Tags         Guardrails
// @Accept       json
// @Produce      json
// @Param        guardrailsRequest  body      model.GuardrailsInput  true  "Text to screen"
// @Success      200                {object}  model.Findings
// @Failure      400                {object}  ErrorResponse
// @Failure      502                {object}  ErrorResponse
// @Router       /v1/guardrails [post]
func (h *GuardrailHandler) HandleApplyGuardrails(w http.ResponseWriter, r *http.Request) {
	var in model.GuardrailsInput
	if err := decodeJSON(r, &in); err != nil {
		respondWithError(w, err)
		return
	}
	findings, err := h.service.Apply(r.Context(), in)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, findings)
}
