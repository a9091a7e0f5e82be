// Package repository defines the patient store interface and errors.
package repository

import "github.com/okian/engageoffer/internal/domain/model"

// Option applies a configuration option to the InMemoryStore.
type Option func(*InMemoryStore)

// WithRecords replaces the seed dataset. Records keep the given order.
func WithRecords(records []model.PatientRecord) Option {
	return func(s *InMemoryStore) {
		if records != nil {
			s.records = append([]model.PatientRecord(nil), records...)
		}
	}
}
