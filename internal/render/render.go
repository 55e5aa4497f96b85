// Package render prints chat results, guardrail findings and transcripts as
// plain text for terminals.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"

	"genai-chat/internal/model"
)

const bannerWidth = 75

// printer remembers the first write error so callers check once.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) banner(title string) {
	fill := bannerWidth - 26 - len(title)
	if fill < 3 {
		fill = 3
	}
	p.printf("%s%s%s\n", strings.Repeat("*", 26), title, strings.Repeat("*", fill))
}

// StreamHeader prints the banner shown before streamed text.
func StreamHeader(w io.Writer) error {
	p := &printer{w: w}
	p.banner("Streaming Chat Response")
	return p.err
}

// Result prints a chat result section by section: history, reply,
// citations, finish reason, prompt and timing.
func Result(w io.Writer, r *model.ChatResult) error {
	p := &printer{w: w}

	p.banner("Chat History")
	for _, turn := range r.ChatHistory {
		p.printf("Role: %s, Message: %s\n\n", turn.Role, turn.Message)
	}

	p.banner("Chatbot Message")
	p.printf("text:\n%s\n\n", r.Text)

	p.banner("Citations")
	for i, c := range r.Citations {
		p.printf("Citation %d:\n", i+1)
		p.printf("  Document IDs: [%s]\n", strings.Join(c.DocumentIDs, ", "))
		p.printf("  Start: %d\n", c.Start)
		p.printf("  End: %d\n", c.End)
		p.printf("  Text: %s\n\n", c.Text)
	}

	p.banner("Finish Reason")
	p.printf("finish_reason:%s\n\n", r.FinishReason)

	p.banner("Prompt")
	p.printf("prompt:%s\n\n", r.Prompt)

	p.banner("Inference Time")
	if r.Streamed && r.Latency.TimeToFirstToken != nil {
		p.printf("time to first token: %s\n", seconds(*r.Latency.TimeToFirstToken))
	}
	p.printf("total inference time: %s\n", seconds(r.Latency.Total))
	return p.err
}

// Findings prints the request id followed by the findings as indented JSON.
func Findings(w io.Writer, f *model.Findings) error {
	body, err := sonic.ConfigDefault.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode findings: %w", err)
	}
	p := &printer{w: w}
	p.printf("opc_request_id: %s\n", f.RequestID)
	p.printf("findings: %s\n", body)
	return p.err
}

// Transcripts prints one line per transcript.
func Transcripts(w io.Writer, transcripts []*model.Transcript) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := &printer{w: tw}
	p.printf("ID\tCREATED\tMODE\tFINISH\tTOTAL\tMESSAGE\n")
	for _, t := range transcripts {
		mode := "sync"
		if t.Streamed {
			mode = "stream"
		}
		p.printf("%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.CreatedAt.Local().Format(time.DateTime),
			mode,
			t.FinishReason,
			seconds(t.Total),
			truncate(oneLine(t.Message), 40),
		)
	}
	if p.err != nil {
		return p.err
	}
	return tw.Flush()
}

// Transcript prints a stored transcript in the same layout as Result.
func Transcript(w io.Writer, t *model.Transcript) error {
	p := &printer{w: w}
	p.printf("id: %s\nmodel: %s\ncreated: %s\nmessage: %s\n\n",
		t.ID, t.ModelID, t.CreatedAt.Local().Format(time.RFC3339), t.Message)
	if p.err != nil {
		return p.err
	}
	return Result(w, t.Result())
}

func seconds(d time.Duration) string {
	return fmt.Sprintf("%.2f sec", d.Seconds())
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens a string to n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
