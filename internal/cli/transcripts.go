package cli

import (
	"context"
	"fmt"

	"genai-chat/internal/app"
	"genai-chat/internal/render"
	"genai-chat/internal/service"
)

func runTranscripts(ctx context.Context, r *runner, args []string) int {
	var (
		common commonFlags
		limit  int
	)
	fs := r.newFlagSet()
	fs.IntVarP(&limit, "limit", "n", 20, "number of transcripts to list, 0 for all")
	common.register(fs)
	if code := r.parse(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() > 0 {
		return r.usageError(fs, "unexpected arguments: %v", fs.Args())
	}
	if limit < 0 {
		return r.usageError(fs, "--limit must not be negative")
	}

	s, err := r.open(common, true)
	if err != nil {
		return r.fail(err)
	}
	defer s.Close()

	svc := service.NewChatService(s.repository(), nil, app.ModelLabel(s.cfg))
	transcripts, err := svc.ListTranscripts(ctx, limit)
	if err != nil {
		return r.fail(err)
	}
	if len(transcripts) == 0 {
		fmt.Fprintln(r.stdout, "No transcripts stored.")
		return exitOK
	}
	if err := render.Transcripts(r.stdout, transcripts); err != nil {
		return r.fail(err)
	}
	return exitOK
}

func runTranscript(ctx context.Context, r *runner, args []string) int {
	var (
		common commonFlags
		remove bool
	)
	fs := r.newFlagSet()
	fs.BoolVarP(&remove, "delete", "d", false, "delete the transcript instead of printing it")
	common.register(fs)
	if code := r.parse(fs, args); code >= 0 {
		return code
	}
	if fs.NArg() != 1 {
		return r.usageError(fs, "exactly one transcript ID is required")
	}
	id := fs.Arg(0)

	s, err := r.open(common, true)
	if err != nil {
		return r.fail(err)
	}
	defer s.Close()

	svc := service.NewChatService(s.repository(), nil, app.ModelLabel(s.cfg))
	if remove {
		if err := svc.DeleteTranscript(ctx, id); err != nil {
			return r.fail(err)
		}
		fmt.Fprintf(r.stdout, "Deleted transcript %s\n", id)
		return exitOK
	}

	transcript, err := svc.GetTranscript(ctx, id)
	if err != nil {
		return r.fail(err)
	}
	if err := render.Transcript(r.stdout, transcript); err != nil {
		return r.fail(err)
	}
	return exitOK
}
