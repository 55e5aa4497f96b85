package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-chat/internal/model"
	"genai-chat/internal/repository"
)

var columns = []string{"id", "model_id", "message", "streamed", "text", "finish_reason", "prompt",
	"chat_history", "citations", "time_to_first_ns", "total_ns", "created_at"}

func setupRepository(t *testing.T) (repository.Repository, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return repository.NewSQLiteRepository(db), mockDB
}

func sampleTranscript() *model.Transcript {
	ttft := 120 * time.Millisecond
	return &model.Transcript{
		ID:           "req-1",
		ModelID:      "cohere.command-r-plus",
		Message:      "Tell me about Oracle Database.",
		Streamed:     true,
		Text:         "Hello world",
		FinishReason: model.FinishComplete,
		ChatHistory:  []model.ChatTurn{{Role: model.RoleUser, Message: "Tell me about Oracle Database."}},
		Citations:    []model.Citation{{DocumentIDs: []string{"doc_0"}, Start: 0, End: 5, Text: "Hello"}},
		TimeToFirst:  &ttft,
		Total:        time.Second,
		CreatedAt:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSQLiteRepository_SaveTranscript(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		// ARRANGE
		repo, mockDB := setupRepository(t)
		tr := sampleTranscript()
		mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO transcripts")).
			WithArgs(tr.ID, tr.ModelID, tr.Message, true, tr.Text, "COMPLETE", "",
				`[{"role":"USER","message":"Tell me about Oracle Database."}]`,
				`[{"document_ids":["doc_0"],"start":0,"end":5,"text":"Hello"}]`,
				int64(120*time.Millisecond), int64(time.Second), tr.CreatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		// ACT
		err := repo.SaveTranscript(ctx, tr)

		// ASSERT
		require.NoError(t, err)
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Success - nil slices are stored as empty arrays", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		tr := sampleTranscript()
		tr.ChatHistory = nil
		tr.Citations = nil
		tr.TimeToFirst = nil
		mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO transcripts")).
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				sqlmock.AnyArg(), sqlmock.AnyArg(), "[]", "[]", nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.SaveTranscript(ctx, tr))
		require.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("Failure - insert error", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectExec(regexp.QuoteMeta("INSERT INTO transcripts")).WillReturnError(errors.New("disk full"))

		err := repo.SaveTranscript(ctx, sampleTranscript())
		assert.ErrorContains(t, err, "disk full")
	})
}

func TestSQLiteRepository_GetTranscript(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("FROM transcripts WHERE id = ?")

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		want := sampleTranscript()
		rows := sqlmock.NewRows(columns).AddRow(
			want.ID, want.ModelID, want.Message, true, want.Text, "COMPLETE", "",
			`[{"role":"USER","message":"Tell me about Oracle Database."}]`,
			`[{"document_ids":["doc_0"],"start":0,"end":5,"text":"Hello"}]`,
			int64(120*time.Millisecond), int64(time.Second), want.CreatedAt)
		mockDB.ExpectQuery(query).WithArgs("req-1").WillReturnRows(rows)

		got, err := repo.GetTranscript(ctx, "req-1")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Success - missing time to first token", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		rows := sqlmock.NewRows(columns).AddRow(
			"req-2", "", "m", false, "", "ERROR", "", "[]", "[]", nil, int64(5), time.Now())
		mockDB.ExpectQuery(query).WithArgs("req-2").WillReturnRows(rows)

		got, err := repo.GetTranscript(ctx, "req-2")
		require.NoError(t, err)
		assert.Nil(t, got.TimeToFirst)
		assert.Empty(t, got.ChatHistory)
		assert.Equal(t, model.FinishError, got.FinishReason)
	})

	t.Run("Failure - not found", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectQuery(query).WithArgs("missing").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetTranscript(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Failure - corrupt json column", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		rows := sqlmock.NewRows(columns).AddRow(
			"req-3", "", "m", false, "", "COMPLETE", "", "{not json", "[]", nil, int64(5), time.Now())
		mockDB.ExpectQuery(query).WithArgs("req-3").WillReturnRows(rows)

		_, err := repo.GetTranscript(ctx, "req-3")
		assert.ErrorContains(t, err, "could not decode chat history")
	})
}

func TestSQLiteRepository_ListTranscripts(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - with limit", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		rows := sqlmock.NewRows(columns).
			AddRow("b", "", "m2", false, "t2", "COMPLETE", "", "[]", "[]", nil, int64(2), time.Now()).
			AddRow("a", "", "m1", true, "t1", "COMPLETE", "", "[]", "[]", int64(1), int64(2), time.Now())
		mockDB.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT ?")).WithArgs(2).WillReturnRows(rows)

		got, err := repo.ListTranscripts(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "b", got[0].ID)
		assert.Equal(t, "a", got[1].ID)
	})

	t.Run("Success - empty store returns an empty slice", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).WillReturnRows(sqlmock.NewRows(columns))

		got, err := repo.ListTranscripts(ctx, 0)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSQLiteRepository_DeleteTranscript(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("DELETE FROM transcripts WHERE id = ?")

	t.Run("Success", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectExec(query).WithArgs("req-1").WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteTranscript(ctx, "req-1"))
	})

	t.Run("Failure - not found", func(t *testing.T) {
		repo, mockDB := setupRepository(t)
		mockDB.ExpectExec(query).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.DeleteTranscript(ctx, "missing"), repository.ErrNotFound)
	})
}
