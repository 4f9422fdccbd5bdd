package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/zjrosen/stax/internal/stacks/application"
)

// journalRepository implements application.JournalRecorder using SQLite.
type journalRepository struct {
	db *sql.DB
}

// newJournalRepository creates a new journalRepository instance.
func newJournalRepository(db *sql.DB) *journalRepository {
	return &journalRepository{db: db}
}

// Ensure journalRepository implements application.JournalRecorder.
var _ application.JournalRecorder = (*journalRepository)(nil)

// Record inserts a new journal entry. The entry keeps whatever status
// the caller set; the dispatcher records entries as queued.
func (r *journalRepository) Record(rec application.MutationRecord) error {
	model := toMutationModel(rec)

	_, err := r.db.Exec(
		`INSERT INTO mutations (id, kind, stack_id, source, dest, detail, status, error, created_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		model.ID, model.Kind, model.StackID, model.Source, model.Dest,
		model.Detail, model.Status, model.Error, model.CreatedAt, model.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert mutation record: %w", err)
	}
	return nil
}

// MarkApplied transitions an entry to applied and stamps its finish time.
func (r *journalRepository) MarkApplied(id string) error {
	result, err := r.db.Exec(
		`UPDATE mutations SET status = ?, finished_at = ? WHERE id = ?`,
		string(application.StatusApplied), time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark mutation applied: %w", err)
	}
	return requireOneRow(result, id)
}

// MarkFailed transitions an entry to failed with the error message.
func (r *journalRepository) MarkFailed(id string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	result, err := r.db.Exec(
		`UPDATE mutations SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(application.StatusFailed), msg, time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark mutation failed: %w", err)
	}
	return requireOneRow(result, id)
}

// Recent returns the newest entries, up to limit, newest first.
func (r *journalRepository) Recent(limit int) ([]application.MutationRecord, error) {
	rows, err := r.db.Query(
		`SELECT id, kind, stack_id, source, dest, detail, status, error, created_at, finished_at
		 FROM mutations
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list mutation records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []application.MutationRecord
	for rows.Next() {
		var model MutationModel
		err := rows.Scan(&model.ID, &model.Kind, &model.StackID, &model.Source, &model.Dest,
			&model.Detail, &model.Status, &model.Error, &model.CreatedAt, &model.FinishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mutation row: %w", err)
		}
		records = append(records, model.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mutation rows: %w", err)
	}

	return records, nil
}

func requireOneRow(result sql.Result, id string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("mutation record %s not found", id)
	}
	return nil
}
