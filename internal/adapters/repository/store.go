// Package repository defines the patient store interface and errors.
package repository

import (
	"context"

	"github.com/okian/engageoffer/internal/domain/model"
)

// Store provides read access to the patient dataset.
type Store interface {
	// List returns every record in dataset order.
	List(ctx context.Context) ([]model.PatientRecord, error)

	// Get returns the record for a patient id.
	// Returns ErrNotFound if the patient is unknown.
	Get(ctx context.Context, patientID int) (model.PatientRecord, error)

	// Count returns the number of records in the dataset.
	Count(ctx context.Context) int
}
