package repository

import (
	"context"
	"errors"
	"testing"

	"patientor/internal/models"
)

func newPatient() models.NewPatient {
	return models.NewPatient{
		Name:        "John McClane",
		DateOfBirth: "1986-07-09",
		SSN:         "090786-122X",
		Gender:      models.GenderMale,
		Occupation:  "New york city cop",
	}
}

func TestMemoryRepository_AddEntryAssignsID(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	p, err := repo.CreatePatient(ctx, newPatient())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	entry := &models.HospitalEntry{
		EntryBase: models.EntryBase{Date: "2015-01-02", Description: "fall", Specialist: "MD House"},
		Discharge: models.Discharge{Date: "2015-01-16", Criteria: "Healed"},
	}
	updated, err := repo.AddEntry(ctx, p.ID, entry)
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}
	if len(updated.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(updated.Entries))
	}
	if updated.Entries[0].Base().ID == "" {
		t.Error("expected server-assigned entry id")
	}
	if len(p.Entries) != 0 {
		t.Error("previously returned patient must not change")
	}

	got, err := repo.GetPatient(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Entries) != 1 {
		t.Errorf("expected stored entry, got %d", len(got.Entries))
	}
}

func TestMemoryRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	if _, err := repo.GetPatient(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	entry := &models.HealthCheckEntry{EntryBase: models.EntryBase{Date: "2020-01-01"}}
	if _, err := repo.AddEntry(ctx, "missing", entry); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSeedDiagnoses_OnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	seeded, err := SeedDiagnoses(ctx, repo)
	if err != nil || !seeded {
		t.Fatalf("expected seeding, got seeded=%v err=%v", seeded, err)
	}
	seeded, err = SeedDiagnoses(ctx, repo)
	if err != nil || seeded {
		t.Fatalf("expected no second seeding, got seeded=%v err=%v", seeded, err)
	}

	list, _ := repo.ListDiagnoses(ctx)
	if len(list) != len(DefaultDiagnoses) {
		t.Errorf("expected %d diagnoses, got %d", len(DefaultDiagnoses), len(list))
	}
}
