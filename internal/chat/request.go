package chat

import (
	"slices"

	"genai-chat/internal/model"
	"genai-chat/internal/validation"
)

// DefaultMaxTokens is used when the builder is not given a token limit.
const DefaultMaxTokens = 500

// Sampling holds the generation parameters accepted by the Cohere chat API.
type Sampling struct {
	Temperature      float64 `json:"temperature" validate:"gte=0,lte=1"`
	TopP             float64 `json:"top_p" validate:"gte=0,lte=1"`
	TopK             int     `json:"top_k" validate:"gte=0,lte=500"`
	FrequencyPenalty float64 `json:"frequency_penalty" validate:"gte=0,lte=1"`
	PresencePenalty  float64 `json:"presence_penalty" validate:"gte=0,lte=1"`
}

// DefaultSampling returns the parameters the service examples are tuned for.
func DefaultSampling() Sampling {
	return Sampling{
		Temperature:      0.75,
		TopP:             0.7,
		TopK:             0,
		FrequencyPenalty: 1.0,
	}
}

// Request is a validated, immutable chat request. Build one with a Builder.
type Request struct {
	fields requestFields
}

func (r *Request) Message() string { return r.fields.Message }
func (r *Request) History() []model.ChatTurn { return slices.Clone(r.fields.History) }
func (r *Request) Documents() []model.ReferenceDocument { return slices.Clone(r.fields.Documents) }
func (r *Request) Sampling() Sampling { return r.fields.Sampling }
func (r *Request) MaxTokens() int { return r.fields.MaxTokens }
func (r *Request) Stream() bool { return r.fields.Stream }
func (r *Request) Echo() bool { return r.fields.Echo }
func (r *Request) PreambleOverride() string { return r.fields.PreambleOverride }
func (r *Request) Seed() *int {
	if r.fields.Seed == nil {
		return nil
	}
	seed := *r.fields.Seed
	return &seed
}

// requestFields is the validated shape behind Request and Builder.
type requestFields struct {
	Message          string                    `json:"message" validate:"notblank"`
	History          []model.ChatTurn          `json:"chat_history" validate:"dive"`
	Documents        []model.ReferenceDocument `json:"documents" validate:"dive"`
	Sampling         Sampling                  `json:"sampling"`
	MaxTokens        int                       `json:"max_tokens" validate:"gt=0"`
	Stream           bool                      `json:"stream"`
	Echo             bool                      `json:"echo"`
	PreambleOverride string                    `json:"preamble_override"`
	Seed             *int                      `json:"seed" validate:"omitempty,gte=0"`
}

// Builder accumulates request fields. Nothing is checked until Build.
type Builder struct {
	fields requestFields
}

// NewBuilder starts a request for message with default sampling and token limit.
func NewBuilder(message string) *Builder {
	return &Builder{fields: requestFields{
		Message:   message,
		Sampling:  DefaultSampling(),
		MaxTokens: DefaultMaxTokens,
	}}
}

// WithHistory appends prior turns in order.
func (b *Builder) WithHistory(turns ...model.ChatTurn) *Builder {
	b.fields.History = append(b.fields.History, turns...)
	return b
}

// WithDocuments appends grounding documents in order.
func (b *Builder) WithDocuments(docs ...model.ReferenceDocument) *Builder {
	b.fields.Documents = append(b.fields.Documents, docs...)
	return b
}

func (b *Builder) WithSampling(s Sampling) *Builder {
	b.fields.Sampling = s
	return b
}

func (b *Builder) WithMaxTokens(n int) *Builder {
	b.fields.MaxTokens = n
	return b
}

// Streaming selects the server-sent-event response path.
func (b *Builder) Streaming(on bool) *Builder {
	b.fields.Stream = on
	return b
}

// Echo asks the service to return the fully rendered prompt.
func (b *Builder) Echo(on bool) *Builder {
	b.fields.Echo = on
	return b
}

func (b *Builder) WithPreambleOverride(preamble string) *Builder {
	b.fields.PreambleOverride = preamble
	return b
}

func (b *Builder) WithSeed(seed int) *Builder {
	b.fields.Seed = &seed
	return b
}

// Build validates the accumulated fields and returns an immutable Request.
// The first offending field is reported as an *errors.InvalidParameterError.
func (b *Builder) Build() (*Request, error) {
	if err := validation.Instance().Struct(b.fields); err != nil {
		return nil, validation.AsInvalidParameter(err)
	}

	f := b.fields
	f.History = slices.Clone(f.History)
	f.Documents = slices.Clone(f.Documents)
	if f.Seed != nil {
		seed := *f.Seed
		f.Seed = &seed
	}
	return &Request{fields: f}, nil
}
