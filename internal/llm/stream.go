package llm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	app_errors "genai-chat/internal/errors"
	"genai-chat/internal/model"
)

const (
	maxEventSize   = 4 << 20
	doneSentinel   = "[DONE]"
	snippetPreview = 120
)

// EventStream reads a server-sent-event chat response and yields one decoded
// fragment per event. It implements chat.FragmentSource.
type EventStream struct {
	RequestID string

	body    io.ReadCloser
	scanner *bufio.Scanner
}

// NewEventStream wraps a text/event-stream body.
func NewEventStream(body io.ReadCloser, requestID string) *EventStream {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)
	return &EventStream{RequestID: requestID, body: body, scanner: scanner}
}

// Next returns the next fragment, or io.EOF when the stream ends.
func (s *EventStream) Next() (model.Fragment, error) {
	data, err := s.readEvent()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, classifyError(err)
	}
	if string(data) == doneSentinel {
		return nil, io.EOF
	}
	return decodeFragment(data)
}

func (s *EventStream) Close() error {
	return s.body.Close()
}

// readEvent collects the data lines of one event. Comment lines and fields
// other than data are skipped.
func (s *EventStream) readEvent() ([]byte, error) {
	var data []byte
	hasData := false
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			if hasData {
				return data, nil
			}
			continue
		}
		if line[0] == ':' {
			continue
		}
		field, value, _ := bytes.Cut(line, []byte(":"))
		if string(field) != "data" {
			continue
		}
		value = bytes.TrimPrefix(value, []byte(" "))
		if hasData {
			data = append(data, '\n')
		}
		data = append(data, value...)
		hasData = true
	}
	if err := s.scanner.Err(); err != nil {
		return nil, err
	}
	if hasData {
		return data, nil
	}
	return nil, io.EOF
}

// decodeFragment classifies one event payload. An event carrying
// finishReason is the Final fragment; otherwise it must carry text.
func decodeFragment(data []byte) (model.Fragment, error) {
	var ev cohereChatResponse
	if err := sonic.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: could not decode fragment %q: %v", app_errors.ErrProtocolViolation, preview(data), err)
	}
	switch {
	case ev.FinishReason != nil:
		return ev.toFinal(), nil
	case ev.Text != nil:
		return model.TextDelta{Text: *ev.Text}, nil
	}
	return nil, fmt.Errorf("%w: unrecognized fragment %q", app_errors.ErrProtocolViolation, preview(data))
}

func preview(data []byte) string {
	if len(data) <= snippetPreview {
		return string(data)
	}
	return string(data[:snippetPreview]) + "..."
}

// idleTimeoutReader closes the body when a single read blocks for longer
// than timeout, turning a stalled connection into ErrTimeout. The clock only
// runs while a Read is in flight, so a caller may pause between reads.
type idleTimeoutReader struct {
	rc      io.ReadCloser
	timeout time.Duration
	timer   *time.Timer
	expired bool
}

func newIdleTimeoutReader(rc io.ReadCloser, timeout time.Duration) io.ReadCloser {
	if timeout <= 0 {
		return rc
	}
	r := &idleTimeoutReader{rc: rc, timeout: timeout}
	r.timer = time.AfterFunc(timeout, func() { _ = rc.Close() })
	r.timer.Stop()
	return r
}

func (r *idleTimeoutReader) Read(p []byte) (int, error) {
	if r.expired {
		return 0, r.timeoutError()
	}
	r.timer.Reset(r.timeout)
	n, err := r.rc.Read(p)
	if !r.timer.Stop() {
		// The timer fired during this read and closed the body.
		r.expired = true
		return n, r.timeoutError()
	}
	return n, err
}

func (r *idleTimeoutReader) timeoutError() error {
	return fmt.Errorf("%w: no data received for %s", app_errors.ErrTimeout, r.timeout)
}

func (r *idleTimeoutReader) Close() error {
	r.timer.Stop()
	return r.rc.Close()
}
