package service

import (
	"context"
	"log/slog"

	"genai-chat/internal/llm"
	"genai-chat/internal/model"
	"genai-chat/internal/validation"
)

// GuardrailService screens text for PII, harmful content and prompt injection.
type GuardrailService struct {
	llm llm.Provider
}

func NewGuardrailService(provider llm.Provider) *GuardrailService {
	return &GuardrailService{llm: provider}
}

// Apply validates in and runs the guardrails call. Invalid input is reported
// as an *errors.InvalidParameterError without contacting the service.
func (s *GuardrailService) Apply(ctx context.Context, in model.GuardrailsInput) (*model.Findings, error) {
	if err := validation.Instance().Struct(in); err != nil {
		return nil, validation.AsInvalidParameter(err)
	}
	findings, err := s.llm.ApplyGuardrails(ctx, in)
	if err != nil {
		slog.Error("Guardrails call failed", "error", err)
		return nil, err
	}
	slog.Info("Guardrails call completed", "request_id", findings.RequestID, "pii_findings", len(findings.PII))
	return findings, nil
}
