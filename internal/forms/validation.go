// Package forms implements the add-patient and add-entry form logic:
// validation and the per-form submission state machine.
package forms

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"patientor/internal/models"
)

// MissingOrInvalid is the message reported for every failing field.
const MissingOrInvalid = "Field is missing or invalid"

// Errors maps a field name to its error message. Empty means valid.
type Errors map[string]string

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	if err := models.RegisterValidations(v); err != nil {
		panic(err)
	}
	return v
}

// Validate checks the entry form values. date, description and specialist
// are always required and employerName only for OccupationalHealthcare.
// Hospital and HealthCheck add no client-side checks of their own.
func Validate(values models.EntryPayload) Errors {
	return collect(validate.Struct(values))
}

// ValidatePatient checks the add-patient form values.
func ValidatePatient(values models.NewPatient) Errors {
	return collect(validate.Struct(values))
}

func collect(err error) Errors {
	errs := Errors{}
	if err == nil {
		return errs
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = MissingOrInvalid
	}
	return errs
}
