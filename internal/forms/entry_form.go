package forms

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"patientor/internal/models"
)

// InitialEntryValues are the values a new entry form starts from.
func InitialEntryValues() models.EntryPayload {
	return models.EntryPayload{
		Type:           models.EntryTypeOccupationalHealthcare,
		DiagnosisCodes: []string{},
	}
}

// EntryForm is the add-entry form.
type EntryForm struct {
	*Form[models.EntryPayload]
}

// NewEntryForm returns a pristine form with InitialEntryValues.
func NewEntryForm() *EntryForm {
	return &EntryForm{newForm(InitialEntryValues(), Validate, equalEntryPayload)}
}

// SetField sets one field from its text form. diagnosisCodes takes a comma
// separated list.
func (f *EntryForm) SetField(name, value string) error {
	return f.Edit(func(v *models.EntryPayload) error {
		switch name {
		case "date":
			v.Date = value
		case "description":
			v.Description = value
		case "specialist":
			v.Specialist = value
		case "diagnosisCodes":
			v.DiagnosisCodes = splitCodes(value)
		case "type":
			v.Type = models.EntryType(value)
		case "employerName":
			v.EmployerName = value
		case "sickLeave.startDate":
			v.SickLeave.StartDate = value
		case "sickLeave.endDate":
			v.SickLeave.EndDate = value
		case "discharge.date":
			v.Discharge.Date = value
		case "discharge.criteria":
			v.Discharge.Criteria = value
		case "healthCheckRating":
			rating, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("healthCheckRating: %w", err)
			}
			v.HealthCheckRating = models.HealthCheckRating(rating)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		return nil
	})
}

func splitCodes(value string) []string {
	codes := []string{}
	for _, c := range strings.Split(value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			codes = append(codes, c)
		}
	}
	return codes
}

func equalEntryPayload(a, b models.EntryPayload) bool {
	return a.Date == b.Date &&
		a.Description == b.Description &&
		a.Specialist == b.Specialist &&
		slices.Equal(a.DiagnosisCodes, b.DiagnosisCodes) &&
		a.Type == b.Type &&
		a.EmployerName == b.EmployerName &&
		a.SickLeave == b.SickLeave &&
		a.Discharge == b.Discharge &&
		a.HealthCheckRating == b.HealthCheckRating
}
