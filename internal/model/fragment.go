package model

// Fragment is one decoded unit of a streamed chat response: either a
// TextDelta or a Final.
type Fragment interface {
	fragment()
}

// TextDelta carries the next piece of generated text.
type TextDelta struct {
	Text string
}

// Final terminates a stream. A synchronous response is also decoded into a
// Final. Text is nil when the service omitted it.
type Final struct {
	FinishReason FinishReason
	ChatHistory  []ChatTurn
	Citations    []Citation
	Prompt       string
	Text         *string
}

func (TextDelta) fragment() {}
func (Final) fragment()     {}
