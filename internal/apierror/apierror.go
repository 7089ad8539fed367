// Package apierror defines the error values the HTTP error handler turns
// into response envelopes, keeping internal detail (driver errors, stack
// traces) out of client responses.
package apierror

// ValidationError carries per-field messages for a rejected form.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	return "please correct the errors below"
}
