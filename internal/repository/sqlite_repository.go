package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"genai-chat/internal/model"
)

const transcriptColumns = "id, model_id, message, streamed, text, finish_reason, prompt, chat_history, citations, time_to_first_ns, total_ns, created_at"

type sqliteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) SaveTranscript(ctx context.Context, t *model.Transcript) error {
	history, err := sonic.Marshal(nonNil(t.ChatHistory))
	if err != nil {
		return fmt.Errorf("could not encode chat history: %w", err)
	}
	citations, err := sonic.Marshal(nonNil(t.Citations))
	if err != nil {
		return fmt.Errorf("could not encode citations: %w", err)
	}

	var ttft sql.NullInt64
	if t.TimeToFirst != nil {
		ttft = sql.NullInt64{Int64: int64(*t.TimeToFirst), Valid: true}
	}

	query := "INSERT INTO transcripts (" + transcriptColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.ModelID,
		t.Message,
		t.Streamed,
		t.Text,
		string(t.FinishReason),
		t.Prompt,
		string(history),
		string(citations),
		ttft,
		int64(t.Total),
		t.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("could not insert transcript: %w", err)
	}
	return nil
}

func (r *sqliteRepository) GetTranscript(ctx context.Context, id string) (*model.Transcript, error) {
	query := "SELECT " + transcriptColumns + " FROM transcripts WHERE id = ?"
	t, err := scanTranscript(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *sqliteRepository) ListTranscripts(ctx context.Context, limit int) ([]*model.Transcript, error) {
	query := "SELECT " + transcriptColumns + " FROM transcripts ORDER BY created_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transcripts := []*model.Transcript{}
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, rows.Err()
}

func (r *sqliteRepository) DeleteTranscript(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM transcripts WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTranscript(s scanner) (*model.Transcript, error) {
	var t model.Transcript
	var finishReason, history, citations string
	var ttft sql.NullInt64
	var total int64

	err := s.Scan(&t.ID, &t.ModelID, &t.Message, &t.Streamed, &t.Text, &finishReason, &t.Prompt,
		&history, &citations, &ttft, &total, &t.CreatedAt)
	if err != nil {
		return nil, err
	}

	t.FinishReason = model.FinishReason(finishReason)
	t.Total = time.Duration(total)
	if ttft.Valid {
		d := time.Duration(ttft.Int64)
		t.TimeToFirst = &d
	}
	if err := sonic.UnmarshalString(history, &t.ChatHistory); err != nil {
		return nil, fmt.Errorf("could not decode chat history of %s: %w", t.ID, err)
	}
	if err := sonic.UnmarshalString(citations, &t.Citations); err != nil {
		return nil, fmt.Errorf("could not decode citations of %s: %w", t.ID, err)
	}
	return &t, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
