// Package repository stores patients, entries and diagnoses for the API server.
package repository

import (
	"context"
	"errors"

	"patientor/internal/models"
)

// ErrNotFound is returned when a patient does not exist.
var ErrNotFound = errors.New("not found")

// Repository is the storage used by the HTTP handlers.
type Repository interface {
	ListPatients(ctx context.Context) ([]models.Patient, error)
	GetPatient(ctx context.Context, id string) (models.Patient, error)
	CreatePatient(ctx context.Context, np models.NewPatient) (models.Patient, error)
	// AddEntry appends entry to the patient and returns the updated patient.
	// The entry id is assigned here when empty.
	AddEntry(ctx context.Context, patientID string, entry models.Entry) (models.Patient, error)
	ListDiagnoses(ctx context.Context) ([]models.Diagnosis, error)
	// SaveDiagnoses inserts or replaces reference diagnoses.
	SaveDiagnoses(ctx context.Context, diagnoses []models.Diagnosis) error
}
