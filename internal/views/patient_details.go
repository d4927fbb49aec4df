package views

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"patientor/internal/client"
	"patientor/internal/forms"
	"patientor/internal/models"
	"patientor/internal/render"
	"patientor/internal/state"
)

// ErrNotMounted is returned by page operations outside Mount/Unmount.
var ErrNotMounted = errors.New("page is not mounted")

// PatientDetailsPage shows one patient with entries and hosts the add-entry
// modal.
//
// The fetch effect runs at most once per patient id per mount. Unmount
// cancels outstanding requests and any result arriving afterwards is
// dropped instead of dispatched.
type PatientDetailsPage struct {
	api    API
	store  *state.Store
	logger zerolog.Logger

	// teardown orders result dispatch against Unmount.
	teardown sync.Mutex

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	fetched map[string]bool
	id      string

	form   *forms.EntryForm
	banner string
}

func NewPatientDetailsPage(api API, store *state.Store, logger zerolog.Logger) *PatientDetailsPage {
	return &PatientDetailsPage{api: api, store: store, logger: logger}
}

// Mount attaches the page. parent bounds every request the page makes.
func (p *PatientDetailsPage) Mount(parent context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.ctx, p.cancel = context.WithCancel(parent)
	p.fetched = map[string]bool{}
}

// Unmount tears the page down and cancels in-flight requests.
func (p *PatientDetailsPage) Unmount() {
	p.teardown.Lock()
	defer p.teardown.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	p.cancel = nil
	p.fetched = nil
	p.form = nil
	p.banner = ""
}

// Show selects the patient to display and runs the fetch effect for id
// unless it already ran during this mount or the patient is cached.
func (p *PatientDetailsPage) Show(id string) error {
	p.mu.Lock()
	if p.cancel == nil {
		p.mu.Unlock()
		return ErrNotMounted
	}
	p.id = id
	ctx := p.ctx
	if p.fetched[id] {
		p.mu.Unlock()
		return nil
	}
	p.fetched[id] = true
	p.mu.Unlock()

	current := p.store.State()
	if _, ok := current.PatientDetails(id); ok && len(current.Diagnoses) > 0 {
		return nil
	}
	return p.fetch(ctx, id)
}

func (p *PatientDetailsPage) fetch(ctx context.Context, id string) error {
	g, gctx := errgroup.WithContext(ctx)

	go func() {
		if err := p.api.Ping(ctx); err != nil {
			p.logger.Debug().Err(err).Msg("ping")
		}
	}()

	var diagnoses []models.Diagnosis
	g.Go(func() error {
		var err error
		diagnoses, err = p.api.ListDiagnoses(gctx)
		if err != nil {
			p.logger.Error().Err(err).Msg("fetch diagnoses")
		}
		return err
	})

	var patient models.Patient
	g.Go(func() error {
		var err error
		patient, err = p.api.GetPatient(gctx, id)
		if err != nil {
			p.logger.Error().Err(err).Str("patient_id", id).Msg("fetch patient details")
		}
		return err
	})

	err := g.Wait()
	if diagnoses != nil {
		p.dispatch(ctx, state.SetDiagnosisList(diagnoses))
	}
	if err != nil {
		return err
	}
	p.dispatch(ctx, state.PatientDetails(patient))
	return nil
}

// dispatch applies a unless the mount that issued the request is gone.
func (p *PatientDetailsPage) dispatch(ctx context.Context, a state.Action) bool {
	p.teardown.Lock()
	defer p.teardown.Unlock()
	if ctx.Err() != nil {
		p.logger.Debug().Str("action", a.Type()).Msg("dropping result after teardown")
		return false
	}
	p.store.Dispatch(a)
	return true
}

// OpenModal starts a fresh add-entry form.
func (p *PatientDetailsPage) OpenModal() *forms.EntryForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = forms.NewEntryForm()
	p.banner = ""
	return p.form
}

// CloseModal discards the form and clears the banner.
func (p *PatientDetailsPage) CloseModal() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.form != nil && !p.form.Phase().Terminal() {
		_ = p.form.Cancel()
	}
	p.form = nil
	p.banner = ""
}

// Banner is the error shown in the open modal, if any.
func (p *PatientDetailsPage) Banner() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.banner
}

// SubmitEntry sends the open form for the displayed patient. On success the
// updated patient replaces the cached details and the modal closes; on
// failure the server message becomes the banner and the modal stays open.
func (p *PatientDetailsPage) SubmitEntry() (models.Patient, error) {
	p.mu.Lock()
	form, id, ctx := p.form, p.id, p.ctx
	p.mu.Unlock()
	if ctx == nil || ctx.Err() != nil {
		return models.Patient{}, ErrNotMounted
	}
	if form == nil {
		return models.Patient{}, forms.ErrFormClosed
	}

	var updated models.Patient
	err := form.Submit(ctx, func(ctx context.Context, values models.EntryPayload) error {
		patient, err := p.api.AddEntry(ctx, id, values)
		if err != nil {
			return err
		}
		updated = patient
		if !p.dispatch(ctx, state.PatientDetails(patient)) {
			return context.Canceled
		}
		return nil
	})
	if err != nil {
		if form.SubmitError() != nil {
			p.logger.Warn().Err(err).Str("patient_id", id).Msg("add entry failed")
			p.mu.Lock()
			p.banner = client.Message(err)
			p.mu.Unlock()
		}
		return models.Patient{}, err
	}

	p.mu.Lock()
	p.form = nil
	p.banner = ""
	p.mu.Unlock()
	return updated, nil
}

// Render writes the displayed patient. Nothing is written while the patient
// is not in the store.
func (p *PatientDetailsPage) Render(w io.Writer) error {
	p.mu.Lock()
	id := p.id
	p.mu.Unlock()

	s := p.store.State()
	patient, ok := s.PatientDetails(id)
	if !ok {
		return nil
	}
	return render.Patient(w, patient, s)
}
