package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

const patientJSON = `{
  "id": "d2773336-f723-11e9-8f0b-362b9e155667",
  "name": "John McClane",
  "dateOfBirth": "1986-07-09",
  "ssn": "090786-122X",
  "gender": "male",
  "occupation": "New york city cop",
  "entries": [
    {
      "id": "d811e46d-70b3-4d90-b090-4535c7cf8fb1",
      "date": "2015-01-02",
      "type": "Hospital",
      "specialist": "MD House",
      "diagnosisCodes": ["S62.5"],
      "description": "Healing time appr. 2 weeks. patient doesn't remember how he got the injury.",
      "discharge": {"date": "2015-01-16", "criteria": "Thumb has healed."}
    },
    {
      "id": "fcd59fa6-c4b4-4fec-ac4d-df4fe1f85f62",
      "date": "2019-08-05",
      "type": "OccupationalHealthcare",
      "specialist": "MD House",
      "employerName": "HyPD",
      "description": "Patient mistakenly found himself in a nuclear plant waste site without protection gear.",
      "sickLeave": {"startDate": "2019-08-05", "endDate": "2019-08-28"}
    },
    {
      "id": "b4f4eca1-2aa7-4b13-9a18-4a5535c3c8da",
      "date": "2019-10-20",
      "type": "HealthCheck",
      "specialist": "MD House",
      "description": "Yearly control visit. Cholesterol levels back to normal.",
      "healthCheckRating": 1
    }
  ]
}`

func TestPatient_DecodesEntryVariants(t *testing.T) {
	var p Patient
	if err := json.Unmarshal([]byte(patientJSON), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(p.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(p.Entries))
	}

	hospital, ok := p.Entries[0].(*HospitalEntry)
	if !ok || hospital.Discharge.Criteria != "Thumb has healed." {
		t.Errorf("unexpected first entry %#v", p.Entries[0])
	}
	oh, ok := p.Entries[1].(*OccupationalHealthcareEntry)
	if !ok || oh.SickLeave == nil || oh.SickLeave.EndDate != "2019-08-28" {
		t.Errorf("unexpected second entry %#v", p.Entries[1])
	}
	hc, ok := p.Entries[2].(*HealthCheckEntry)
	if !ok || hc.HealthCheckRating != RatingLowRisk {
		t.Errorf("unexpected third entry %#v", p.Entries[2])
	}
}

func TestEntry_EncodesTypeTag(t *testing.T) {
	e := &HealthCheckEntry{
		EntryBase:         EntryBase{ID: "e1", Date: "2024-01-01", Description: "d", Specialist: "s"},
		HealthCheckRating: RatingCriticalRisk,
	}
	raw, err := json.Marshal(Entries{e})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(raw), `"type":"HealthCheck"`) {
		t.Errorf("expected type tag in %s", raw)
	}
	if !strings.Contains(string(raw), `"healthCheckRating":3`) {
		t.Errorf("expected rating in %s", raw)
	}
}

func TestEntries_NilEncodesAsEmptyArray(t *testing.T) {
	raw, err := json.Marshal(Patient{ID: "p"}.NonSensitive())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(string(raw), `"entries":[]`) {
		t.Errorf("expected empty entries array in %s", raw)
	}
}

func TestDecodeEntry_UnknownType(t *testing.T) {
	_, err := DecodeEntry([]byte(`{"type":"Surgery","date":"2024-01-01"}`))
	var unknown *UnknownEntryTypeError
	if !errors.As(err, &unknown) || unknown.Type != "Surgery" {
		t.Errorf("expected UnknownEntryTypeError, got %v", err)
	}
}

type countingVisitor struct {
	healthCheck, hospital, occupational int
}

func (v *countingVisitor) VisitHealthCheck(*HealthCheckEntry)                       { v.healthCheck++ }
func (v *countingVisitor) VisitHospital(*HospitalEntry)                             { v.hospital++ }
func (v *countingVisitor) VisitOccupationalHealthcare(*OccupationalHealthcareEntry) { v.occupational++ }

func TestVisitEntry(t *testing.T) {
	v := &countingVisitor{}
	VisitEntry(&HealthCheckEntry{}, v)
	VisitEntry(&HospitalEntry{}, v)
	VisitEntry(&OccupationalHealthcareEntry{}, v)
	if v.healthCheck != 1 || v.hospital != 1 || v.occupational != 1 {
		t.Errorf("unexpected dispatch counts %+v", v)
	}

	defer func() {
		if _, ok := recover().(*UnhandledEntryError); !ok {
			t.Error("expected *UnhandledEntryError panic for nil entry")
		}
	}()
	VisitEntry(nil, v)
}

func TestPatient_WithEntryDoesNotAlias(t *testing.T) {
	p := Patient{ID: "p", Entries: make(Entries, 0, 4)}
	a := p.WithEntry(&HealthCheckEntry{EntryBase: EntryBase{ID: "a"}})
	b := p.WithEntry(&HealthCheckEntry{EntryBase: EntryBase{ID: "b"}})
	if a.Entries[0].Base().ID != "a" || b.Entries[0].Base().ID != "b" {
		t.Error("appending to one copy changed another")
	}
	if len(p.Entries) != 0 {
		t.Error("original patient changed")
	}
}
