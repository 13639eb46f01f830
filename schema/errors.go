package schema

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnbound is returned by a slot that was never bound to its descriptor.
// Schema structs must be created with their New function (or Schema.Init).
var ErrUnbound = errors.New("schema: field is not bound to a descriptor")

// ValidationError reports a value rejected by a descriptor.
type ValidationError struct {
	Field  string
	Value  any
	Domain string
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("schema: %s: None is not allowed, expected %s", e.Field, e.Domain)
	}
	return fmt.Sprintf("schema: %s: invalid value %#v, expected %s", e.Field, e.Value, e.Domain)
}

// MalformedError reports content of a document that cannot be turned into
// the declared field. Err holds the parse or validation failure.
type MalformedError struct {
	Element string
	Field   string
	Value   string
	Err     error
}

func (e *MalformedError) Error() string {
	msg := fmt.Sprintf("schema: malformed <%s>", e.Element)
	if e.Field != "" {
		msg += fmt.Sprintf(" field %s", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" value %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedError) Unwrap() error { return e.Err }

func invalid(field string, v any, domain string) error {
	return &ValidationError{Field: field, Value: v, Domain: domain}
}

func malformed(el, field, value string, err error) error {
	var m *MalformedError
	if errors.As(err, &m) {
		return err
	}
	return &MalformedError{Element: el, Field: field, Value: value, Err: err}
}
