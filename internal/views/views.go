// Package views holds the page controllers of the presentation layer. A
// page fetches through the API, dispatches into the store and renders from
// the store.
package views

import (
	"context"

	"patientor/internal/models"
)

// API is the remote data source used by the pages.
type API interface {
	Ping(ctx context.Context) error
	ListPatients(ctx context.Context) ([]models.Patient, error)
	GetPatient(ctx context.Context, id string) (models.Patient, error)
	AddPatient(ctx context.Context, np models.NewPatient) (models.Patient, error)
	ListDiagnoses(ctx context.Context) ([]models.Diagnosis, error)
	AddEntry(ctx context.Context, patientID string, entry models.EntryPayload) (models.Patient, error)
}
