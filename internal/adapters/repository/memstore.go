package repository

import (
	"context"
	"fmt"

	"github.com/okian/engageoffer/internal/domain/model"
	"github.com/okian/engageoffer/internal/domain/risk"
)

// SeedRecords returns the reference patient dataset.
func SeedRecords() []model.PatientRecord {
	return []model.PatientRecord{
		{ID: 101, Name: "John Doe", Risk: risk.Cardiovascular, Visits: 5, FeedbackScore: 80},
		{ID: 102, Name: "Jane Smith", Risk: risk.Neurology, Visits: 8, FeedbackScore: 70},
		{ID: 103, Name: "Alex Johnson", Risk: risk.Cancer, Visits: 3, FeedbackScore: 90},
	}
}

// InMemoryStore is a read-only Store over a fixed slice of records.
// It never mutates after construction, so it is safe for concurrent use.
type InMemoryStore struct {
	records []model.PatientRecord
	byID    map[int]int // patient id -> index into records
}

// NewInMemoryStore creates a store seeded with SeedRecords unless
// WithRecords is given. When ids repeat, Get returns the first record.
func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		records: SeedRecords(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.byID = make(map[int]int, len(s.records))
	for i, r := range s.records {
		if _, dup := s.byID[r.ID]; !dup {
			s.byID[r.ID] = i
		}
	}
	return s
}

// List returns a copy of every record in dataset order.
func (s *InMemoryStore) List(ctx context.Context) ([]model.PatientRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return append([]model.PatientRecord(nil), s.records...), nil
}

// Get returns the record for patientID.
func (s *InMemoryStore) Get(ctx context.Context, patientID int) (model.PatientRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.PatientRecord{}, fmt.Errorf("get patient %d: %w", patientID, err)
	}
	i, ok := s.byID[patientID]
	if !ok {
		return model.PatientRecord{}, fmt.Errorf("%w: %d", ErrNotFound, patientID)
	}
	return s.records[i], nil
}

// Count returns the number of records.
func (s *InMemoryStore) Count(_ context.Context) int {
	return len(s.records)
}
