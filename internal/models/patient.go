package models

// Gender of a patient.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Patient represents a patient and their medical entries.
type Patient struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DateOfBirth string  `json:"dateOfBirth,omitempty"`
	SSN         string  `json:"ssn,omitempty"`
	Gender      Gender  `json:"gender"`
	Occupation  string  `json:"occupation"`
	Entries     Entries `json:"entries"`
}

// NonSensitive strips the fields the patient list never exposes.
func (p Patient) NonSensitive() Patient {
	p.SSN = ""
	p.Entries = nil
	return p
}

// WithEntry returns a copy of p with e appended. p itself is left untouched.
func (p Patient) WithEntry(e Entry) Patient {
	entries := make(Entries, len(p.Entries), len(p.Entries)+1)
	copy(entries, p.Entries)
	p.Entries = append(entries, e)
	return p
}

// NewPatient is the payload for creating a patient.
type NewPatient struct {
	Name        string `json:"name" binding:"required"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,calendardate"`
	SSN         string `json:"ssn" binding:"required"`
	Gender      Gender `json:"gender" binding:"required,oneof=male female other"`
	Occupation  string `json:"occupation" binding:"required"`
}

// Diagnosis maps a diagnosis code to its human readable name.
type Diagnosis struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Latin string `json:"latin,omitempty"`
}
