package sqlite

import (
	"time"

	"github.com/zjrosen/stax/internal/stacks/application"
	"github.com/zjrosen/stax/internal/stacks/domain"
)

// MutationModel represents the database row for the mutations table.
// Fields map directly to SQL columns with Unix timestamps for time values.
type MutationModel struct {
	ID         string
	Kind       string
	StackID    string
	Source     string
	Dest       string
	Detail     string
	Status     string
	Error      string
	CreatedAt  int64  // Unix timestamp
	FinishedAt *int64 // Unix timestamp, nullable
}

// toMutationModel converts a journal record to a database MutationModel.
func toMutationModel(rec application.MutationRecord) *MutationModel {
	m := &MutationModel{
		ID:        rec.ID,
		Kind:      string(rec.Kind),
		StackID:   rec.StackID,
		Source:    string(rec.Source),
		Dest:      string(rec.Dest),
		Detail:    rec.Detail,
		Status:    string(rec.Status),
		Error:     rec.Error,
		CreatedAt: rec.CreatedAt.Unix(),
	}
	if !rec.FinishedAt.IsZero() {
		finishedAt := rec.FinishedAt.Unix()
		m.FinishedAt = &finishedAt
	}
	return m
}

// toRecord converts a database MutationModel to a journal record.
func (m *MutationModel) toRecord() application.MutationRecord {
	rec := application.MutationRecord{
		ID:        m.ID,
		Kind:      application.MutationKind(m.Kind),
		StackID:   m.StackID,
		Source:    domain.CommitID(m.Source),
		Dest:      domain.CommitID(m.Dest),
		Detail:    m.Detail,
		Status:    application.MutationStatus(m.Status),
		Error:     m.Error,
		CreatedAt: time.Unix(m.CreatedAt, 0),
	}
	if m.FinishedAt != nil {
		rec.FinishedAt = time.Unix(*m.FinishedAt, 0)
	}
	return rec
}
