package forms

import (
	"testing"

	"patientor/internal/models"
)

func validPayload(t models.EntryType) models.EntryPayload {
	return models.EntryPayload{
		Date:         "2024-01-01",
		Description:  "x",
		Specialist:   "y",
		Type:         t,
		EmployerName: "ACME",
	}
}

func TestValidate_CommonFieldsRequired(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*models.EntryPayload)
		field string
	}{
		{"empty date", func(p *models.EntryPayload) { p.Date = "" }, "date"},
		{"unparseable date", func(p *models.EntryPayload) { p.Date = "yesterday" }, "date"},
		{"empty description", func(p *models.EntryPayload) { p.Description = "" }, "description"},
		{"empty specialist", func(p *models.EntryPayload) { p.Specialist = "" }, "specialist"},
	}
	for _, tt := range tests {
		for _, et := range models.EntryTypes {
			p := validPayload(et)
			tt.edit(&p)
			errs := Validate(p)
			if errs[tt.field] != MissingOrInvalid {
				t.Errorf("%s/%s: expected error on %s, got %v", tt.name, et, tt.field, errs)
			}
		}
	}
}

func TestValidate_EmployerNameOnlyForOccupational(t *testing.T) {
	p := validPayload(models.EntryTypeOccupationalHealthcare)
	p.EmployerName = ""
	if errs := Validate(p); errs["employerName"] == "" {
		t.Errorf("expected employerName error, got %v", errs)
	}

	for _, et := range []models.EntryType{models.EntryTypeHospital, models.EntryTypeHealthCheck} {
		p := validPayload(et)
		p.EmployerName = ""
		if errs := Validate(p); len(errs) != 0 {
			t.Errorf("%s: expected no errors, got %v", et, errs)
		}
	}
}

func TestValidate_PopulatedFormIsValid(t *testing.T) {
	for _, et := range models.EntryTypes {
		if errs := Validate(validPayload(et)); len(errs) != 0 {
			t.Errorf("%s: expected no errors, got %v", et, errs)
		}
	}

	p := validPayload(models.EntryTypeHealthCheck)
	p.Date = "2024-01-01T10:00:00Z"
	if errs := Validate(p); len(errs) != 0 {
		t.Errorf("expected RFC 3339 date to be accepted, got %v", errs)
	}
}

func TestValidate_UnknownType(t *testing.T) {
	p := validPayload("Surgery")
	if errs := Validate(p); errs["type"] == "" {
		t.Errorf("expected type error, got %v", errs)
	}
}

func TestValidatePatient(t *testing.T) {
	np := models.NewPatient{
		Name:        "Martin Riggs",
		DateOfBirth: "1979-01-30",
		SSN:         "300179-77A",
		Gender:      models.GenderMale,
		Occupation:  "Cop",
	}
	if errs := ValidatePatient(np); len(errs) != 0 {
		t.Fatalf("expected valid patient, got %v", errs)
	}

	np.Gender = "unknown"
	np.DateOfBirth = ""
	errs := ValidatePatient(np)
	if errs["gender"] == "" || errs["dateOfBirth"] == "" {
		t.Errorf("expected gender and dateOfBirth errors, got %v", errs)
	}
}
