package models

import (
	"errors"
	"strings"
	"testing"
)

func TestIsCalendarDate(t *testing.T) {
	tests := map[string]bool{
		"2024-01-01":           true,
		"2024-01-01T10:00:00Z": true,
		"2024-02-30":           false,
		"01/02/2024":           false,
		"":                     false,
	}
	for in, want := range tests {
		if got := IsCalendarDate(in); got != want {
			t.Errorf("IsCalendarDate(%q) = %v, want %v", in, got, want)
		}
	}
}

func common(t EntryType) EntryPayload {
	return EntryPayload{
		Date:        "2024-01-01",
		Description: "x",
		Specialist:  "y",
		Type:        t,
	}
}

func TestToEntry_ReadsOnlyVariantFields(t *testing.T) {
	p := common(EntryTypeOccupationalHealthcare)
	p.EmployerName = "ACME"
	p.Discharge = Discharge{Date: "2024-01-02", Criteria: "ignored"}
	p.HealthCheckRating = 2

	e, err := p.ToEntry("e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	oh, ok := e.(*OccupationalHealthcareEntry)
	if !ok {
		t.Fatalf("expected occupational entry, got %T", e)
	}
	if oh.ID != "e1" || oh.EmployerName != "ACME" {
		t.Errorf("unexpected entry %+v", oh)
	}
	if oh.SickLeave != nil {
		t.Error("empty sick leave must be omitted")
	}
}

func TestToEntry_VariantRules(t *testing.T) {
	tests := []struct {
		name    string
		payload func() EntryPayload
		problem string
	}{
		{"hospital needs discharge", func() EntryPayload { return common(EntryTypeHospital) }, "discharge date"},
		{"rating range", func() EntryPayload {
			p := common(EntryTypeHealthCheck)
			p.HealthCheckRating = 4
			return p
		}, "healthCheckRating"},
		{"employer required", func() EntryPayload { return common(EntryTypeOccupationalHealthcare) }, "employerName"},
		{"half sick leave", func() EntryPayload {
			p := common(EntryTypeOccupationalHealthcare)
			p.EmployerName = "ACME"
			p.SickLeave.StartDate = "2024-01-01"
			return p
		}, "sickLeave"},
		{"common fields", func() EntryPayload {
			p := common(EntryTypeHealthCheck)
			p.Specialist = ""
			return p
		}, "specialist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.payload().ToEntry("")
			var invalid *InvalidEntryError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidEntryError, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.problem) {
				t.Errorf("expected %q in %q", tt.problem, err.Error())
			}
		})
	}
}

func TestToEntry_UnknownType(t *testing.T) {
	_, err := common("Surgery").ToEntry("")
	var unknown *UnknownEntryTypeError
	if !errors.As(err, &unknown) {
		t.Errorf("expected UnknownEntryTypeError, got %v", err)
	}
}
