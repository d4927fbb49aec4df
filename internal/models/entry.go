package models

import (
	"encoding/json"
	"fmt"
)

// EntryType is the discriminator of the entry variants.
type EntryType string

const (
	EntryTypeHealthCheck            EntryType = "HealthCheck"
	EntryTypeHospital               EntryType = "Hospital"
	EntryTypeOccupationalHealthcare EntryType = "OccupationalHealthcare"
)

// EntryTypes lists the closed set of variants in display order.
var EntryTypes = []EntryType{
	EntryTypeOccupationalHealthcare,
	EntryTypeHealthCheck,
	EntryTypeHospital,
}

// Valid reports whether t is one of the known variants.
func (t EntryType) Valid() bool {
	switch t {
	case EntryTypeHealthCheck, EntryTypeHospital, EntryTypeOccupationalHealthcare:
		return true
	}
	return false
}

// HealthCheckRating is an ordinal scale from healthy to critical.
type HealthCheckRating int

const (
	RatingHealthy HealthCheckRating = iota
	RatingLowRisk
	RatingHighRisk
	RatingCriticalRisk
)

func (r HealthCheckRating) Valid() bool {
	return r >= RatingHealthy && r <= RatingCriticalRisk
}

func (r HealthCheckRating) String() string {
	switch r {
	case RatingHealthy:
		return "Healthy"
	case RatingLowRisk:
		return "LowRisk"
	case RatingHighRisk:
		return "HighRisk"
	case RatingCriticalRisk:
		return "CriticalRisk"
	}
	return fmt.Sprintf("HealthCheckRating(%d)", int(r))
}

// EntryBase holds the fields shared by every entry variant.
type EntryBase struct {
	ID             string   `json:"id,omitempty"`
	Date           string   `json:"date"`
	Description    string   `json:"description"`
	Specialist     string   `json:"specialist"`
	DiagnosisCodes []string `json:"diagnosisCodes,omitempty"`
}

// Base returns the shared fields of the entry.
func (b *EntryBase) Base() *EntryBase { return b }

func (*EntryBase) sealed() {}

// Entry is one medical record item attached to a patient. The set of
// implementations is closed: HealthCheckEntry, HospitalEntry and
// OccupationalHealthcareEntry.
type Entry interface {
	Type() EntryType
	Base() *EntryBase
	sealed()
}

// HealthCheckEntry records a routine check with a risk rating.
type HealthCheckEntry struct {
	EntryBase
	HealthCheckRating HealthCheckRating `json:"healthCheckRating"`
}

func (*HealthCheckEntry) Type() EntryType { return EntryTypeHealthCheck }

func (e *HealthCheckEntry) MarshalJSON() ([]byte, error) {
	type alias HealthCheckEntry
	return json.Marshal(struct {
		Type EntryType `json:"type"`
		*alias
	}{e.Type(), (*alias)(e)})
}

// Discharge describes how a hospital stay ended.
type Discharge struct {
	Date     string `json:"date"`
	Criteria string `json:"criteria"`
}

// HospitalEntry records a hospital stay.
type HospitalEntry struct {
	EntryBase
	Discharge Discharge `json:"discharge"`
}

func (*HospitalEntry) Type() EntryType { return EntryTypeHospital }

func (e *HospitalEntry) MarshalJSON() ([]byte, error) {
	type alias HospitalEntry
	return json.Marshal(struct {
		Type EntryType `json:"type"`
		*alias
	}{e.Type(), (*alias)(e)})
}

// SickLeave is an inclusive leave interval.
type SickLeave struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// IsZero reports whether neither date is set.
func (s SickLeave) IsZero() bool {
	return s.StartDate == "" && s.EndDate == ""
}

// OccupationalHealthcareEntry records a visit through an employer's healthcare.
type OccupationalHealthcareEntry struct {
	EntryBase
	EmployerName string     `json:"employerName"`
	SickLeave    *SickLeave `json:"sickLeave,omitempty"`
}

func (*OccupationalHealthcareEntry) Type() EntryType { return EntryTypeOccupationalHealthcare }

func (e *OccupationalHealthcareEntry) MarshalJSON() ([]byte, error) {
	type alias OccupationalHealthcareEntry
	return json.Marshal(struct {
		Type EntryType `json:"type"`
		*alias
	}{e.Type(), (*alias)(e)})
}

// EntryVisitor has one method per variant. Adding a variant adds a method
// here, so every visitor fails to compile until it handles it.
type EntryVisitor interface {
	VisitHealthCheck(*HealthCheckEntry)
	VisitHospital(*HospitalEntry)
	VisitOccupationalHealthcare(*OccupationalHealthcareEntry)
}

// VisitEntry dispatches e to the matching visitor method. A value that is
// not one of the known variants panics with *UnhandledEntryError.
func VisitEntry(e Entry, v EntryVisitor) {
	switch entry := e.(type) {
	case *HealthCheckEntry:
		v.VisitHealthCheck(entry)
	case *HospitalEntry:
		v.VisitHospital(entry)
	case *OccupationalHealthcareEntry:
		v.VisitOccupationalHealthcare(entry)
	default:
		panic(&UnhandledEntryError{Value: e})
	}
}

// UnhandledEntryError is the panic value of VisitEntry for foreign variants.
type UnhandledEntryError struct {
	Value Entry
}

func (e *UnhandledEntryError) Error() string {
	if e.Value == nil {
		return "unhandled entry variant: <nil>"
	}
	return fmt.Sprintf("unhandled entry variant %T (type %q)", e.Value, e.Value.Type())
}

// UnknownEntryTypeError is returned when decoding a tag outside the closed set.
type UnknownEntryTypeError struct {
	Type EntryType
}

func (e *UnknownEntryTypeError) Error() string {
	return fmt.Sprintf("unknown entry type %q", string(e.Type))
}

// DecodeEntry decodes a single tagged entry.
func DecodeEntry(data []byte) (Entry, error) {
	var probe struct {
		Type EntryType `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decode entry type: %w", err)
	}

	var entry Entry
	switch probe.Type {
	case EntryTypeHealthCheck:
		entry = &HealthCheckEntry{}
	case EntryTypeHospital:
		entry = &HospitalEntry{}
	case EntryTypeOccupationalHealthcare:
		entry = &OccupationalHealthcareEntry{}
	default:
		return nil, &UnknownEntryTypeError{Type: probe.Type}
	}

	if err := json.Unmarshal(data, entry); err != nil {
		return nil, fmt.Errorf("decode %s entry: %w", probe.Type, err)
	}
	return entry, nil
}

// Entries is an ordered entry sequence with tagged JSON encoding.
type Entries []Entry

func (es Entries) MarshalJSON() ([]byte, error) {
	if es == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Entry(es))
}

func (es *Entries) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Entries, 0, len(raw))
	for i, r := range raw {
		entry, err := DecodeEntry(r)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, entry)
	}
	*es = out
	return nil
}
