package chat

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/model"
)

// State is the position of an Assembler in its lifecycle.
type State int

const (
	AwaitingFirst State = iota
	StreamingText
	Finalized
	Failed
)

func (s State) String() string {
	switch s {
	case AwaitingFirst:
		return "AWAITING_FIRST"
	case StreamingText:
		return "STREAMING_TEXT"
	case Finalized:
		return "FINALIZED"
	case Failed:
		return "FAILED"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Assembler turns the fragments of one response into a single ChatResult.
// It is not safe for concurrent use; one Assembler serves one request.
type Assembler struct {
	state   State
	now     func() time.Time
	started time.Time
	firstAt time.Time
	buf     strings.Builder
	onDelta func(text string)
	logger  *slog.Logger
	result  *model.ChatResult
	err     error
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithDeltaHandler registers fn to receive every TextDelta as it arrives.
func WithDeltaHandler(fn func(text string)) Option {
	return func(a *Assembler) { a.onDelta = fn }
}

// WithStartTime sets the moment the request was sent. Latency is measured
// from it. It defaults to the Assembler's creation time.
func WithStartTime(t time.Time) Option {
	return func(a *Assembler) { a.started = t }
}

func WithClock(now func() time.Time) Option {
	return func(a *Assembler) { a.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(a)
	}
	if a.started.IsZero() {
		a.started = a.now()
	}
	return a
}

func (a *Assembler) State() State { return a.state }

func (a *Assembler) terminal() bool { return a.state == Finalized || a.state == Failed }

// Handle advances the state machine by one streamed fragment.
//
// Fragments that arrive after the stream was finalized are logged and
// ignored. A fragment handed to a failed Assembler returns the original
// failure.
func (a *Assembler) Handle(f model.Fragment) error {
	switch a.state {
	case Finalized:
		if _, ok := f.(model.Final); ok {
			a.logger.Warn("Ignoring duplicate final fragment", "request_id", a.result.RequestID)
		} else {
			a.logger.Warn("Ignoring fragment received after final", "fragment", fmt.Sprintf("%T", f))
		}
		return nil
	case Failed:
		return a.err
	}

	if a.state == AwaitingFirst {
		a.firstAt = a.now()
		a.state = StreamingText
	}

	switch v := f.(type) {
	case model.TextDelta:
		a.buf.WriteString(v.Text)
		if a.onDelta != nil {
			a.onDelta(v.Text)
		}
	case model.Final:
		return a.finalize(v, a.now())
	default:
		return a.Fail(fmt.Errorf("%w: unexpected fragment type %T", app_errors.ErrProtocolViolation, f))
	}
	return nil
}

// HandleResponse applies a synchronous response. It is a single transition
// from AwaitingFirst to Finalized, so time-to-first-token equals total time.
func (a *Assembler) HandleResponse(final model.Final) error {
	if a.state != AwaitingFirst {
		return a.Fail(fmt.Errorf("%w: synchronous response applied in state %s", app_errors.ErrProtocolViolation, a.state))
	}
	t := a.now()
	a.firstAt = t
	return a.finalize(final, t)
}

// Fail moves the Assembler to Failed with err. It has no effect once the
// Assembler is terminal and returns the error that now stands.
func (a *Assembler) Fail(err error) error {
	if a.terminal() {
		return a.err
	}
	if errors.Is(err, app_errors.ErrProtocolViolation) {
		a.logger.Warn("Aborting chat stream", "state", a.state.String(), "error", err)
	}
	a.state = Failed
	a.err = err
	a.result = nil
	return err
}

// Finish returns the assembled result. Calling it before a Final fragment
// was seen means the stream ended early, which fails the Assembler.
func (a *Assembler) Finish() (*model.ChatResult, error) {
	if !a.terminal() {
		a.Fail(fmt.Errorf("%w: stream closed before final fragment (state %s)", app_errors.ErrProtocolViolation, a.state))
	}
	if a.state == Failed {
		return nil, a.err
	}
	return a.result, nil
}

func (a *Assembler) finalize(f model.Final, at time.Time) error {
	text := a.buf.String()
	if f.Text != nil {
		text = *f.Text
	}
	if err := checkCitations(f.Citations, text); err != nil {
		return a.Fail(err)
	}
	ttft := a.firstAt.Sub(a.started)
	a.result = &model.ChatResult{
		ChatHistory:  slices.Clone(f.ChatHistory),
		Text:         text,
		Citations:    slices.Clone(f.Citations),
		FinishReason: f.FinishReason,
		Prompt:       f.Prompt,
		Latency: model.Latency{
			TimeToFirstToken: &ttft,
			Total:            at.Sub(a.started),
		},
	}
	if a.result.ChatHistory == nil {
		a.result.ChatHistory = []model.ChatTurn{}
	}
	if a.result.Citations == nil {
		a.result.Citations = []model.Citation{}
	}
	a.state = Finalized
	return nil
}

// checkCitations requires every span to satisfy 0 <= start <= end <= len,
// counted in characters of the final text.
func checkCitations(citations []model.Citation, text string) error {
	n := utf8.RuneCountInString(text)
	for i, c := range citations {
		if c.Start < 0 || c.Start > c.End || c.End > n {
			return fmt.Errorf("%w: citation %d spans [%d,%d) outside text of %d characters",
				app_errors.ErrProtocolViolation, i, c.Start, c.End, n)
		}
	}
	return nil
}
