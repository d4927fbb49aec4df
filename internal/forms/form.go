package forms

import (
	"context"
	"errors"
)

// Phase is the lifecycle position of a form.
type Phase int

const (
	Pristine Phase = iota
	Editing
	Valid
	Invalid
	Submitted
	Cancelled
)

func (p Phase) String() string {
	switch p {
	case Pristine:
		return "pristine"
	case Editing:
		return "editing"
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	case Submitted:
		return "submitted"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Terminal reports whether no further edits are accepted.
func (p Phase) Terminal() bool {
	return p == Submitted || p == Cancelled
}

var (
	ErrFormClosed    = errors.New("form is already submitted or cancelled")
	ErrSubmitBlocked = errors.New("form is unchanged or has validation errors")
	ErrUnknownField  = errors.New("unknown form field")
)

// Form tracks the values of one form instance from first edit to submit or
// cancel. Every edit re-runs validation.
type Form[T any] struct {
	initial   T
	values    T
	validate  func(T) Errors
	equal     func(a, b T) bool
	errors    Errors
	phase     Phase
	submitErr error
}

func newForm[T any](initial T, validate func(T) Errors, equal func(a, b T) bool) *Form[T] {
	return &Form[T]{
		initial:  initial,
		values:   initial,
		validate: validate,
		equal:    equal,
		errors:   Errors{},
		phase:    Pristine,
	}
}

// Values returns the current values.
func (f *Form[T]) Values() T { return f.values }

// Errors returns the field errors of the last validation.
func (f *Form[T]) Errors() Errors { return f.errors }

// Phase returns the lifecycle position.
func (f *Form[T]) Phase() Phase { return f.phase }

// SubmitError is the failure of the last submit attempt, shown as a banner
// while the form stays open.
func (f *Form[T]) SubmitError() error { return f.submitErr }

// Dirty reports whether the values differ from the initial values.
func (f *Form[T]) Dirty() bool {
	return !f.equal(f.values, f.initial)
}

// CanSubmit is true when the form is dirty and has no validation errors.
func (f *Form[T]) CanSubmit() bool {
	return !f.phase.Terminal() && f.Dirty() && len(f.errors) == 0
}

// Edit applies fn to the values and re-validates.
func (f *Form[T]) Edit(fn func(*T) error) error {
	if f.phase.Terminal() {
		return ErrFormClosed
	}
	next := f.values
	if err := fn(&next); err != nil {
		return err
	}
	f.phase = Editing
	f.values = next
	f.errors = f.validate(f.values)
	if len(f.errors) == 0 {
		f.phase = Valid
	} else {
		f.phase = Invalid
	}
	return nil
}

// Submit forwards the full values to submit when CanSubmit. On failure the
// error is kept for display and the form stays open for correction.
func (f *Form[T]) Submit(ctx context.Context, submit func(context.Context, T) error) error {
	if f.phase.Terminal() {
		return ErrFormClosed
	}
	if !f.CanSubmit() {
		return ErrSubmitBlocked
	}
	if err := submit(ctx, f.values); err != nil {
		f.submitErr = err
		return err
	}
	f.submitErr = nil
	f.phase = Submitted
	return nil
}

// Cancel discards the edits and closes the form.
func (f *Form[T]) Cancel() error {
	if f.phase.Terminal() {
		return ErrFormClosed
	}
	f.values = f.initial
	f.errors = Errors{}
	f.submitErr = nil
	f.phase = Cancelled
	return nil
}
