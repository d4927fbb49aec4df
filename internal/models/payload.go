package models

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// IsCalendarDate reports whether s parses as a calendar date, either a bare
// date or a full RFC 3339 timestamp.
func IsCalendarDate(s string) bool {
	if _, err := time.Parse(DateLayout, s); err == nil {
		return true
	}
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

// RegisterValidations installs the custom rules used by the binding tags and
// reports field errors under their JSON names.
func RegisterValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		return IsCalendarDate(fl.Field().String())
	})
}

// EntryPayload is a new entry as submitted by the client: the common fields,
// the variant tag and every variant field. Only the fields relevant to Type
// are interpreted.
type EntryPayload struct {
	Date              string            `json:"date" binding:"required,calendardate"`
	Description       string            `json:"description" binding:"required"`
	Specialist        string            `json:"specialist" binding:"required"`
	DiagnosisCodes    []string          `json:"diagnosisCodes"`
	Type              EntryType         `json:"type" binding:"required,oneof=HealthCheck Hospital OccupationalHealthcare"`
	EmployerName      string            `json:"employerName" binding:"required_if=Type OccupationalHealthcare"`
	SickLeave         SickLeave         `json:"sickLeave"`
	Discharge         Discharge         `json:"discharge"`
	HealthCheckRating HealthCheckRating `json:"healthCheckRating"`
}

// InvalidEntryError lists the variant rules a payload broke.
type InvalidEntryError struct {
	Type     EntryType
	Problems []string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid %s entry: %s", e.Type, strings.Join(e.Problems, "; "))
}

// ToEntry builds the variant selected by Type, reading only its fields.
func (p EntryPayload) ToEntry(id string) (Entry, error) {
	var problems []string
	if !IsCalendarDate(p.Date) {
		problems = append(problems, "date is missing or invalid")
	}
	if p.Description == "" {
		problems = append(problems, "description is missing")
	}
	if p.Specialist == "" {
		problems = append(problems, "specialist is missing")
	}

	base := EntryBase{
		ID:             id,
		Date:           p.Date,
		Description:    p.Description,
		Specialist:     p.Specialist,
		DiagnosisCodes: slices.Clone(p.DiagnosisCodes),
	}

	var entry Entry
	switch p.Type {
	case EntryTypeHealthCheck:
		if !p.HealthCheckRating.Valid() {
			problems = append(problems, "healthCheckRating must be between 0 and 3")
		}
		entry = &HealthCheckEntry{EntryBase: base, HealthCheckRating: p.HealthCheckRating}
	case EntryTypeHospital:
		if !IsCalendarDate(p.Discharge.Date) {
			problems = append(problems, "discharge date is missing or invalid")
		}
		if p.Discharge.Criteria == "" {
			problems = append(problems, "discharge criteria is missing")
		}
		entry = &HospitalEntry{EntryBase: base, Discharge: p.Discharge}
	case EntryTypeOccupationalHealthcare:
		if p.EmployerName == "" {
			problems = append(problems, "employerName is missing")
		}
		oh := &OccupationalHealthcareEntry{EntryBase: base, EmployerName: p.EmployerName}
		if !p.SickLeave.IsZero() {
			if !IsCalendarDate(p.SickLeave.StartDate) || !IsCalendarDate(p.SickLeave.EndDate) {
				problems = append(problems, "sickLeave needs a valid startDate and endDate")
			}
			leave := p.SickLeave
			oh.SickLeave = &leave
		}
		entry = oh
	default:
		return nil, &UnknownEntryTypeError{Type: p.Type}
	}

	if len(problems) > 0 {
		return nil, &InvalidEntryError{Type: p.Type, Problems: problems}
	}
	return entry, nil
}
