package model

// GuardrailsInput is what gets screened by the guardrails call.
type GuardrailsInput struct {
	Text         string   `json:"text" validate:"notblank"`
	LanguageCode string   `json:"language_code" validate:"required,bcp47_language_tag"`
	PIITypes     []string `json:"pii_types" validate:"omitempty,dive,required,uppercase"`

	// ContentModeration and PromptInjection enable the optional checks.
	ContentModeration bool `json:"content_moderation"`
	PromptInjection   bool `json:"prompt_injection"`
}

// PIIFinding is one span of personally identifiable information.
type PIIFinding struct {
	Label  string  `json:"label"`
	Text   string  `json:"text"`
	Offset int     `json:"offset"`
	Length int     `json:"length"`
	Score  float64 `json:"score"`
}

// CategoryScore is a content-moderation category and its score.
type CategoryScore struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Findings is the result of a guardrails call.
type Findings struct {
	RequestID         string          `json:"request_id"`
	PII               []PIIFinding    `json:"pii"`
	ContentModeration []CategoryScore `json:"content_moderation,omitempty"`
	PromptInjection   *float64        `json:"prompt_injection,omitempty"`
}
