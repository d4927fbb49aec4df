package state

import (
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"patientor/internal/models"
)

func patient(id, name string) models.Patient {
	return models.Patient{ID: id, Name: name, Gender: models.GenderOther, Occupation: "tester"}
}

func TestReduce_SetPatientListReplaces(t *testing.T) {
	s := Initial()
	s = Reduce(s, SetPatientList([]models.Patient{patient("a", "Ann"), patient("b", "Bob")}))
	s = Reduce(s, SetPatientList([]models.Patient{patient("c", "Cid")}))

	if len(s.Patients) != 1 {
		t.Fatalf("expected full replacement, got %d patients", len(s.Patients))
	}
	if _, ok := s.Patients["c"]; !ok {
		t.Error("expected patient c after replacement")
	}
}

func TestReduce_LastWriteWinsPerKey(t *testing.T) {
	actions := []Action{
		AddPatient(patient("a", "Ann")),
		PatientDetails(patient("a", "Ann")),
		AddPatient(patient("b", "Bob")),
		AddPatient(patient("a", "Anna")),
		PatientDetails(patient("a", "Anna Maria")),
		SetDiagnosisList([]models.Diagnosis{{Code: "A1", Name: "Flu"}}),
	}

	s := Initial()
	for _, a := range actions {
		s = Reduce(s, a)
	}

	if len(s.Patients) != 2 {
		t.Fatalf("expected 2 patients, got %d", len(s.Patients))
	}
	if got := s.Patients["a"].Name; got != "Anna" {
		t.Errorf("expected latest ADD_PATIENT payload, got %q", got)
	}
	if len(s.Patient) != 1 {
		t.Fatalf("expected 1 detailed patient, got %d", len(s.Patient))
	}
	if got := s.Patient["a"].Name; got != "Anna Maria" {
		t.Errorf("expected latest PATIENT_DETAILS payload, got %q", got)
	}
}

func TestReduce_AddPatientIdempotent(t *testing.T) {
	a := AddPatient(patient("a", "Ann"))
	once := Reduce(Initial(), a)
	twice := Reduce(Reduce(Initial(), a), a)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("dispatching ADD_PATIENT twice changed the result: %+v vs %+v", once, twice)
	}
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	before := Reduce(Initial(), AddPatient(patient("a", "Ann")))
	_ = Reduce(before, AddPatient(patient("b", "Bob")))
	_ = Reduce(before, PatientDetails(patient("a", "Ann")))

	if len(before.Patients) != 1 {
		t.Errorf("input state patients mutated: %d entries", len(before.Patients))
	}
	if len(before.Patient) != 0 {
		t.Errorf("input state details mutated: %d entries", len(before.Patient))
	}
}

func TestDiagnosisName(t *testing.T) {
	s := Reduce(Initial(), SetDiagnosisList([]models.Diagnosis{{Code: "A1", Name: "Flu"}}))

	name, ok := s.DiagnosisName("A1")
	if !ok || name != "Flu" {
		t.Errorf("expected Flu, got %q (found=%v)", name, ok)
	}
	if name, ok := s.DiagnosisName("Z9"); ok {
		t.Errorf("expected Z9 to be not found, got %q", name)
	}
}

func TestActionTypes(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{SetPatientList(nil), "SET_PATIENT_LIST"},
		{AddPatient(models.Patient{}), "ADD_PATIENT"},
		{PatientDetails(models.Patient{}), "PATIENT_DETAILS"},
		{SetDiagnosisList(nil), "SET_DIAGNOSIS_LIST"},
	}
	for _, tt := range tests {
		if got := tt.action.Type(); got != tt.want {
			t.Errorf("Type() = %q, want %q", got, tt.want)
		}
	}
}

func TestStore_DispatchNotifiesSubscribers(t *testing.T) {
	store := NewStore(zerolog.Nop())

	var seen []int
	unsubscribe := store.Subscribe(func(s State) {
		seen = append(seen, len(s.Patients))
	})

	store.Dispatch(AddPatient(patient("a", "Ann")))
	store.Dispatch(AddPatient(patient("b", "Bob")))
	unsubscribe()
	store.Dispatch(AddPatient(patient("c", "Cid")))

	if !reflect.DeepEqual(seen, []int{1, 2}) {
		t.Errorf("unexpected notifications: %v", seen)
	}
	if got := len(store.State().Patients); got != 3 {
		t.Errorf("expected 3 patients in store, got %d", got)
	}
}
