package models

// PatientRecord is the persisted form of a Patient.
type PatientRecord struct {
	BaseModel
	Name        string `gorm:"size:255;not null"`
	DateOfBirth string `gorm:"size:32"`
	SSN         string `gorm:"size:32"`
	Gender      Gender `gorm:"size:10"`
	Occupation  string `gorm:"size:255"`

	// Relations
	Entries []EntryRecord `gorm:"foreignKey:PatientID"`
}

func (PatientRecord) TableName() string { return "patients" }

// NewPatientRecord maps an add-patient payload onto a row.
func NewPatientRecord(np NewPatient) PatientRecord {
	return PatientRecord{
		Name:        np.Name,
		DateOfBirth: np.DateOfBirth,
		SSN:         np.SSN,
		Gender:      np.Gender,
		Occupation:  np.Occupation,
	}
}

// ToPatient converts the row and its preloaded entries.
func (r PatientRecord) ToPatient() (Patient, error) {
	p := Patient{
		ID:          r.ID,
		Name:        r.Name,
		DateOfBirth: r.DateOfBirth,
		SSN:         r.SSN,
		Gender:      r.Gender,
		Occupation:  r.Occupation,
		Entries:     make(Entries, 0, len(r.Entries)),
	}
	for _, er := range r.Entries {
		e, err := er.ToEntry()
		if err != nil {
			return Patient{}, err
		}
		p.Entries = append(p.Entries, e)
	}
	return p, nil
}

// EntryRecord stores every variant in one table; the variant columns not
// selected by Type stay empty.
type EntryRecord struct {
	BaseModel
	PatientID      string    `gorm:"size:36;index;not null"`
	Type           EntryType `gorm:"size:32;not null"`
	Date           string    `gorm:"size:32"`
	Description    string    `gorm:"type:text"`
	Specialist     string    `gorm:"size:255"`
	DiagnosisCodes []string  `gorm:"serializer:json"`

	EmployerName      string `gorm:"size:255"`
	SickLeaveStart    string `gorm:"size:32"`
	SickLeaveEnd      string `gorm:"size:32"`
	DischargeDate     string `gorm:"size:32"`
	DischargeCriteria string `gorm:"type:text"`
	HealthCheckRating *int
}

func (EntryRecord) TableName() string { return "entries" }

// NewEntryRecord flattens e into a row owned by patientID.
func NewEntryRecord(patientID string, e Entry) EntryRecord {
	b := e.Base()
	rec := EntryRecord{
		BaseModel:      BaseModel{ID: b.ID},
		PatientID:      patientID,
		Type:           e.Type(),
		Date:           b.Date,
		Description:    b.Description,
		Specialist:     b.Specialist,
		DiagnosisCodes: b.DiagnosisCodes,
	}
	VisitEntry(e, (*recordWriter)(&rec))
	return rec
}

type recordWriter EntryRecord

func (w *recordWriter) VisitHealthCheck(e *HealthCheckEntry) {
	rating := int(e.HealthCheckRating)
	w.HealthCheckRating = &rating
}

func (w *recordWriter) VisitHospital(e *HospitalEntry) {
	w.DischargeDate = e.Discharge.Date
	w.DischargeCriteria = e.Discharge.Criteria
}

func (w *recordWriter) VisitOccupationalHealthcare(e *OccupationalHealthcareEntry) {
	w.EmployerName = e.EmployerName
	if e.SickLeave != nil {
		w.SickLeaveStart = e.SickLeave.StartDate
		w.SickLeaveEnd = e.SickLeave.EndDate
	}
}

// ToEntry rebuilds the variant stored in the row.
func (r EntryRecord) ToEntry() (Entry, error) {
	base := EntryBase{
		ID:             r.ID,
		Date:           r.Date,
		Description:    r.Description,
		Specialist:     r.Specialist,
		DiagnosisCodes: r.DiagnosisCodes,
	}
	switch r.Type {
	case EntryTypeHealthCheck:
		e := &HealthCheckEntry{EntryBase: base}
		if r.HealthCheckRating != nil {
			e.HealthCheckRating = HealthCheckRating(*r.HealthCheckRating)
		}
		return e, nil
	case EntryTypeHospital:
		return &HospitalEntry{
			EntryBase: base,
			Discharge: Discharge{Date: r.DischargeDate, Criteria: r.DischargeCriteria},
		}, nil
	case EntryTypeOccupationalHealthcare:
		e := &OccupationalHealthcareEntry{EntryBase: base, EmployerName: r.EmployerName}
		if r.SickLeaveStart != "" || r.SickLeaveEnd != "" {
			e.SickLeave = &SickLeave{StartDate: r.SickLeaveStart, EndDate: r.SickLeaveEnd}
		}
		return e, nil
	}
	return nil, &UnknownEntryTypeError{Type: r.Type}
}

// DiagnosisRecord is the persisted form of a Diagnosis.
type DiagnosisRecord struct {
	Code  string `gorm:"primaryKey;size:16"`
	Name  string `gorm:"size:255;not null"`
	Latin string `gorm:"size:255"`
}

func (DiagnosisRecord) TableName() string { return "diagnoses" }

func (r DiagnosisRecord) ToDiagnosis() Diagnosis {
	return Diagnosis{Code: r.Code, Name: r.Name, Latin: r.Latin}
}
