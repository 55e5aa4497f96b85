package chat

import (
	"errors"
	"fmt"
	"io"

	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/model"
)

// FragmentSource yields decoded fragments in arrival order. Next returns
// io.EOF when the underlying stream ends. Close releases the connection.
type FragmentSource interface {
	Next() (model.Fragment, error)
	Close() error
}

// Stream pulls fragments from a source one at a time and feeds them to an
// Assembler. The caller drives it with Recv.
type Stream struct {
	src    FragmentSource
	asm    *Assembler
	closed bool
}

func NewStream(src FragmentSource, opts ...Option) *Stream {
	return &Stream{src: src, asm: NewAssembler(opts...)}
}

// Recv processes the next fragment. It returns the delta text for a
// TextDelta, io.EOF once the Final fragment has been processed, or the error
// that failed the stream. The source is closed as soon as the stream is
// finalized or failed.
func (s *Stream) Recv() (string, error) {
	switch s.asm.State() {
	case Finalized:
		return "", io.EOF
	case Failed:
		_, err := s.asm.Finish()
		return "", err
	}

	frag, err := s.src.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: stream ended before final fragment", app_errors.ErrProtocolViolation)
		}
		s.asm.Fail(err)
		s.close()
		return "", err
	}

	if err := s.asm.Handle(frag); err != nil {
		s.close()
		return "", err
	}

	switch v := frag.(type) {
	case model.TextDelta:
		return v.Text, nil
	default:
		s.close()
		return "", io.EOF
	}
}

// Result returns the assembled result. Before the stream is finalized it
// fails the stream and returns an error; no partial result is produced.
func (s *Stream) Result() (*model.ChatResult, error) {
	res, err := s.asm.Finish()
	if err != nil {
		s.close()
	}
	return res, err
}

func (s *Stream) State() State { return s.asm.State() }

// Close abandons the stream. If the Final fragment has not arrived yet the
// stream is failed.
func (s *Stream) Close() error {
	if s.asm.State() != Finalized {
		s.asm.Fail(fmt.Errorf("%w: stream abandoned before final fragment", app_errors.ErrProtocolViolation))
	}
	return s.close()
}

func (s *Stream) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.src.Close()
}

// Collect drains src and returns its result.
func Collect(src FragmentSource, opts ...Option) (*model.ChatResult, error) {
	s := NewStream(src, opts...)
	defer s.Close()
	for {
		if _, err := s.Recv(); err != nil {
			if errors.Is(err, io.EOF) {
				return s.Result()
			}
			return nil, err
		}
	}
}
