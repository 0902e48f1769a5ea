package model

import (
	"errors"
	"strings"
)

// FieldError is a single validation problem on one field
type FieldError struct {
	Field  string
	Err    error  // one of the validation sentinels
	Detail string // optional human readable detail
}

func (e *FieldError) Error() string {
	msg := e.Field + ": " + e.Err.Error()
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidationErrors collects every problem found in one record. Use Err to
// turn it into an error value; an empty ValidationErrors means the record is
// valid.
type ValidationErrors []*FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Unwrap exposes each entry to errors.Is and errors.As
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Err returns nil when there are no entries
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// Has reports whether any entry matches target
func (v ValidationErrors) Has(target error) bool {
	for _, e := range v {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

// ForField returns the entries of one field
func (v ValidationErrors) ForField(field string) ValidationErrors {
	var out ValidationErrors
	for _, e := range v {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

func (v *ValidationErrors) add(field string, err error, detail string) {
	*v = append(*v, &FieldError{Field: field, Err: err, Detail: detail})
}

// AsValidationErrors extracts ValidationErrors from an error chain
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
