package views

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"patientor/internal/client"
	"patientor/internal/forms"
	"patientor/internal/models"
	"patientor/internal/render"
	"patientor/internal/state"
)

// PatientListPage lists patients and hosts the add-patient modal.
type PatientListPage struct {
	api    API
	store  *state.Store
	logger zerolog.Logger

	form   *forms.PatientForm
	banner string
}

func NewPatientListPage(api API, store *state.Store, logger zerolog.Logger) *PatientListPage {
	return &PatientListPage{api: api, store: store, logger: logger}
}

// Load fetches the patient list into the store. On failure the store keeps
// its previous list.
func (p *PatientListPage) Load(ctx context.Context) error {
	patients, err := p.api.ListPatients(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("fetch patient list")
		return err
	}
	p.store.Dispatch(state.SetPatientList(patients))
	return nil
}

// OpenModal starts a fresh add-patient form.
func (p *PatientListPage) OpenModal() *forms.PatientForm {
	p.form = forms.NewPatientForm()
	p.banner = ""
	return p.form
}

// CloseModal discards the form and its banner.
func (p *PatientListPage) CloseModal() {
	if p.form != nil && !p.form.Phase().Terminal() {
		_ = p.form.Cancel()
	}
	p.form = nil
	p.banner = ""
}

// Banner is the error shown in the open modal, if any.
func (p *PatientListPage) Banner() string { return p.banner }

// Submit sends the open form. On success the new patient is added to the
// store and the modal closes; on failure the server message becomes the
// banner and the modal stays open.
func (p *PatientListPage) Submit(ctx context.Context) (models.Patient, error) {
	if p.form == nil {
		return models.Patient{}, forms.ErrFormClosed
	}
	var created models.Patient
	err := p.form.Submit(ctx, func(ctx context.Context, np models.NewPatient) error {
		patient, err := p.api.AddPatient(ctx, np)
		if err != nil {
			return err
		}
		created = patient
		p.store.Dispatch(state.AddPatient(patient))
		return nil
	})
	if err != nil {
		if p.form.SubmitError() != nil {
			p.banner = client.Message(err)
			p.logger.Warn().Err(err).Msg("add patient failed")
		}
		return models.Patient{}, err
	}
	p.form = nil
	p.banner = ""
	return created, nil
}

// Render writes the patient table.
func (p *PatientListPage) Render(w io.Writer) error {
	return render.PatientList(w, p.store.State().Patients)
}
