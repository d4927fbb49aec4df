package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"patientor/internal/models"
)

// MemoryRepository keeps everything in process memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	patients  map[string]models.Patient
	order     []string
	diagnoses map[string]models.Diagnosis
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		patients:  map[string]models.Patient{},
		diagnoses: map[string]models.Diagnosis{},
	}
}

func (r *MemoryRepository) ListPatients(ctx context.Context) ([]models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Patient, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.patients[id])
	}
	return out, nil
}

func (r *MemoryRepository) GetPatient(ctx context.Context, id string) (models.Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.patients[id]
	if !ok {
		return models.Patient{}, fmt.Errorf("patient %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (r *MemoryRepository) CreatePatient(ctx context.Context, np models.NewPatient) (models.Patient, error) {
	p := models.Patient{
		ID:          uuid.New().String(),
		Name:        np.Name,
		DateOfBirth: np.DateOfBirth,
		SSN:         np.SSN,
		Gender:      np.Gender,
		Occupation:  np.Occupation,
		Entries:     models.Entries{},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.patients[p.ID] = p
	r.order = append(r.order, p.ID)
	return p, nil
}

func (r *MemoryRepository) AddEntry(ctx context.Context, patientID string, entry models.Entry) (models.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[patientID]
	if !ok {
		return models.Patient{}, fmt.Errorf("patient %s: %w", patientID, ErrNotFound)
	}
	if entry.Base().ID == "" {
		entry.Base().ID = uuid.New().String()
	}
	p = p.WithEntry(entry)
	r.patients[patientID] = p
	return p, nil
}

func (r *MemoryRepository) ListDiagnoses(ctx context.Context) ([]models.Diagnosis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Diagnosis, 0, len(r.diagnoses))
	for _, d := range r.diagnoses {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b models.Diagnosis) int { return strings.Compare(a.Code, b.Code) })
	return out, nil
}

func (r *MemoryRepository) SaveDiagnoses(ctx context.Context, diagnoses []models.Diagnosis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, d := range diagnoses {
		r.diagnoses[d.Code] = d
	}
	return nil
}
