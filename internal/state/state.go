// Package state holds the client-side cache of server-sourced data. The
// cache changes only through Reduce.
package state

import (
	"maps"

	"patientor/internal/models"
)

// State is the latest known server state. Maps in a State returned by Reduce
// or Store.State are shared snapshots and must not be mutated.
type State struct {
	// Patients is the summary list keyed by patient id.
	Patients map[string]models.Patient
	// Patient holds full patient details keyed by patient id.
	Patient map[string]models.Patient
	// Diagnoses is the reference data keyed by diagnosis code.
	Diagnoses map[string]models.Diagnosis
}

// Initial returns the empty state.
func Initial() State {
	return State{
		Patients:  map[string]models.Patient{},
		Patient:   map[string]models.Patient{},
		Diagnoses: map[string]models.Diagnosis{},
	}
}

// DiagnosisName resolves a diagnosis code.
func (s State) DiagnosisName(code string) (string, bool) {
	d, ok := s.Diagnoses[code]
	if !ok {
		return "", false
	}
	return d.Name, true
}

// PatientDetails returns the cached full record for id.
func (s State) PatientDetails(id string) (models.Patient, bool) {
	p, ok := s.Patient[id]
	return p, ok
}

// Action is a named state transition. Each action carries its own reduction,
// so the vocabulary is closed to this package and Reduce has no fallback
// branch.
type Action interface {
	// Type is the action name, e.g. SET_PATIENT_LIST.
	Type() string
	apply(State) State
}

// Reduce returns the state after applying a. s is not modified.
func Reduce(s State, a Action) State {
	return a.apply(s)
}

type setPatientList struct{ patients []models.Patient }

// SetPatientList replaces the patient list.
func SetPatientList(patients []models.Patient) Action {
	return setPatientList{patients: patients}
}

func (setPatientList) Type() string { return "SET_PATIENT_LIST" }

func (a setPatientList) apply(s State) State {
	next := make(map[string]models.Patient, len(a.patients))
	for _, p := range a.patients {
		next[p.ID] = p
	}
	s.Patients = next
	return s
}

type addPatient struct{ patient models.Patient }

// AddPatient inserts or overwrites one patient in the list.
func AddPatient(p models.Patient) Action {
	return addPatient{patient: p}
}

func (addPatient) Type() string { return "ADD_PATIENT" }

func (a addPatient) apply(s State) State {
	s.Patients = with(s.Patients, a.patient.ID, a.patient)
	return s
}

type patientDetails struct{ patient models.Patient }

// PatientDetails inserts or overwrites the full record of one patient.
func PatientDetails(p models.Patient) Action {
	return patientDetails{patient: p}
}

func (patientDetails) Type() string { return "PATIENT_DETAILS" }

func (a patientDetails) apply(s State) State {
	s.Patient = with(s.Patient, a.patient.ID, a.patient)
	return s
}

type setDiagnosisList struct{ diagnoses []models.Diagnosis }

// SetDiagnosisList replaces the diagnosis reference data.
func SetDiagnosisList(diagnoses []models.Diagnosis) Action {
	return setDiagnosisList{diagnoses: diagnoses}
}

func (setDiagnosisList) Type() string { return "SET_DIAGNOSIS_LIST" }

func (a setDiagnosisList) apply(s State) State {
	next := make(map[string]models.Diagnosis, len(a.diagnoses))
	for _, d := range a.diagnoses {
		next[d.Code] = d
	}
	s.Diagnoses = next
	return s
}

// with copies m and sets key to v in the copy.
func with[V any](m map[string]V, key string, v V) map[string]V {
	next := make(map[string]V, len(m)+1)
	maps.Copy(next, m)
	next[key] = v
	return next
}
