// Package forms implements the shared sanitize/validate/submit pipeline
// behind the public contact form and the admin entity forms.
package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// ErrSubmitInFlight is returned when a submit arrives while another one is
// still running on the same form.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// SubmitFunc receives sanitized, validated field values.
type SubmitFunc func(ctx context.Context, values map[string]string) error

// Form binds a schema and a submit function into one pipeline. A single
// in-flight guard blocks duplicate submits; an accepted submit cannot be
// aborted once started.
type Form struct {
	name   string
	schema Schema
	submit SubmitFunc
	log    zerolog.Logger

	mu      sync.Mutex
	loading bool
}

// New constructs a Form. name tags log lines for failed submissions.
func New(name string, schema Schema, submit SubmitFunc, log zerolog.Logger) *Form {
	return &Form{name: name, schema: schema, submit: submit, log: log}
}

// Schema exposes the form's ruleset for per-field validation.
func (f *Form) Schema() Schema { return f.schema }

// Submit sanitizes and validates raw values, then invokes the submit
// function. On rule failure the field->message map is returned and the
// submit function is never called. Submit-function errors are logged under
// the form's context tag and returned unchanged.
func (f *Form) Submit(ctx context.Context, raw map[string]string) (map[string]string, error) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.loading = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.loading = false
		f.mu.Unlock()
	}()

	values := f.schema.SanitizeAll(raw)
	if fieldErrs := f.schema.Validate(values); len(fieldErrs) > 0 {
		return fieldErrs, nil
	}

	if err := f.submit(ctx, values); err != nil {
		f.log.Error().Err(err).Str("form", f.name).Msg("form submission failed")
		return nil, err
	}
	return nil, nil
}
