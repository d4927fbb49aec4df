// Package render turns cached patient data into terminal text.
package render

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"patientor/internal/models"
)

// DiagnosisLookup resolves diagnosis codes for display.
type DiagnosisLookup interface {
	DiagnosisName(code string) (string, bool)
}

// RatingColor is the colour a health check rating is shown in.
func RatingColor(r models.HealthCheckRating) string {
	switch r {
	case models.RatingHealthy:
		return "green"
	case models.RatingLowRisk:
		return "yellow"
	case models.RatingHighRisk:
		return "orange"
	}
	return "red"
}

// Entry renders one entry. Values outside the known variants panic with
// *models.UnhandledEntryError.
func Entry(e models.Entry, dx DiagnosisLookup) string {
	r := &entryRenderer{}
	models.VisitEntry(e, r)

	b := e.Base()
	fmt.Fprintf(&r.sb, "  %s\n", b.Description)
	if b.Specialist != "" {
		fmt.Fprintf(&r.sb, "  specialist: %s\n", b.Specialist)
	}
	for _, code := range b.DiagnosisCodes {
		if name, ok := dx.DiagnosisName(code); ok {
			fmt.Fprintf(&r.sb, "  - %s %s\n", code, name)
		} else {
			fmt.Fprintf(&r.sb, "  - %s\n", code)
		}
	}
	return r.sb.String()
}

type entryRenderer struct {
	sb strings.Builder
}

func (r *entryRenderer) VisitHealthCheck(e *models.HealthCheckEntry) {
	fmt.Fprintf(&r.sb, "%s [health check] heart: %s (%s)\n",
		e.Date, RatingColor(e.HealthCheckRating), e.HealthCheckRating)
}

func (r *entryRenderer) VisitHospital(e *models.HospitalEntry) {
	fmt.Fprintf(&r.sb, "%s [hospital]", e.Date)
	if e.Discharge.Date != "" {
		fmt.Fprintf(&r.sb, " discharged %s: %s", e.Discharge.Date, e.Discharge.Criteria)
	}
	r.sb.WriteString("\n")
}

func (r *entryRenderer) VisitOccupationalHealthcare(e *models.OccupationalHealthcareEntry) {
	fmt.Fprintf(&r.sb, "%s [occupational] %s", e.Date, e.EmployerName)
	if e.SickLeave != nil {
		fmt.Fprintf(&r.sb, " sick leave %s to %s", e.SickLeave.StartDate, e.SickLeave.EndDate)
	}
	r.sb.WriteString("\n")
}

// Patient renders the patient details page.
func Patient(w io.Writer, p models.Patient, dx DiagnosisLookup) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", p.Name, p.Gender)
	fmt.Fprintf(&sb, "ssn: %s\n", p.SSN)
	fmt.Fprintf(&sb, "dob: %s\n", p.DateOfBirth)
	fmt.Fprintf(&sb, "occupation: %s\n", p.Occupation)
	sb.WriteString("\nentries\n")
	if len(p.Entries) == 0 {
		sb.WriteString("  (none)\n")
	}
	for _, e := range p.Entries {
		sb.WriteString(Entry(e, dx))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// PatientList renders the patient summaries as a table sorted by name.
func PatientList(w io.Writer, patients map[string]models.Patient) error {
	list := make([]models.Patient, 0, len(patients))
	for _, p := range patients {
		list = append(list, p)
	}
	slices.SortFunc(list, func(a, b models.Patient) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGENDER\tOCCUPATION")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Gender, p.Occupation)
	}
	return tw.Flush()
}

// Diagnoses renders the reference data sorted by code.
func Diagnoses(w io.Writer, diagnoses map[string]models.Diagnosis) error {
	codes := make([]string, 0, len(diagnoses))
	for code := range diagnoses {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME")
	for _, code := range codes {
		fmt.Fprintf(tw, "%s\t%s\n", code, diagnoses[code].Name)
	}
	return tw.Flush()
}
