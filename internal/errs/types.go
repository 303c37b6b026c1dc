package errs

import "strings"

// FieldError represents a field-level validation error.
type FieldError struct {
	// Field is the field name the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable message.
	Error string `json:"error"`
}

// ActionType is a string enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRedirect tells the client to redirect; Value holds
	// the target.
	ActionTypeRedirect ActionType = "redirect"
)

// Action describes an optional "what the client should do next"
// instruction, mainly useful in auth flows.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the error type every API response error is rendered
// from. It satisfies the error interface and serializes directly to
// JSON.
//
// Override tells the frontend whether Message is safe to surface
// verbatim.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors, typically for forms.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction.
	Action *Action `json:"action"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports a match whenever target is also a *HTTPError, so
// errors.Is(err, &HTTPError{}) can be used as a type check across
// wrap chains.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES, used to derive stable machine codes
// from HTTP status text ("Bad Request" -> "BAD_REQUEST").
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
