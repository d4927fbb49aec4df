package forms

import (
	"fmt"

	"patientor/internal/models"
)

// PatientForm is the add-patient form.
type PatientForm struct {
	*Form[models.NewPatient]
}

// NewPatientForm returns a pristine add-patient form.
func NewPatientForm() *PatientForm {
	initial := models.NewPatient{Gender: models.GenderOther}
	equal := func(a, b models.NewPatient) bool { return a == b }
	return &PatientForm{newForm(initial, ValidatePatient, equal)}
}

// SetField sets one add-patient field.
func (f *PatientForm) SetField(name, value string) error {
	return f.Edit(func(v *models.NewPatient) error {
		switch name {
		case "name":
			v.Name = value
		case "dateOfBirth":
			v.DateOfBirth = value
		case "ssn":
			v.SSN = value
		case "gender":
			v.Gender = models.Gender(value)
		case "occupation":
			v.Occupation = value
		default:
			return fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		return nil
	})
}
