package cimrdfs

import (
	"errors"
	"fmt"
)

// Sentinel errors. Use errors.Is to test for them.
var (
	// ErrMissingField is returned when a resource lacks a field its kind requires.
	ErrMissingField = errors.New("missing required field")

	// ErrUnrecognizedLiteral is returned for a literal outside the recognized set.
	ErrUnrecognizedLiteral = errors.New("unrecognized literal")

	// ErrDanglingReference is returned when a required reference does not resolve.
	ErrDanglingReference = errors.New("dangling reference")
)

// FieldError reports a resource missing a required field.
type FieldError struct {
	IRI   string
	Field string
}

func (e *FieldError) Error() string {
	if e.IRI == "" {
		return fmt.Sprintf("document: %v: %s", ErrMissingField, e.Field)
	}
	return fmt.Sprintf("resource %s: %v: %s", e.IRI, ErrMissingField, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

// LiteralError reports a literal value that is not in the recognized set.
type LiteralError struct {
	IRI     string
	Field   string
	Literal string
}

func (e *LiteralError) Error() string {
	return fmt.Sprintf("resource %s: %v in %s: %q", e.IRI, ErrUnrecognizedLiteral, e.Field, e.Literal)
}

func (e *LiteralError) Unwrap() error {
	return ErrUnrecognizedLiteral
}

// ReferenceError reports a required reference that names no known resource.
type ReferenceError struct {
	IRI    string
	Field  string
	Target string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("resource %s: %v in %s: %s", e.IRI, ErrDanglingReference, e.Field, e.Target)
}

func (e *ReferenceError) Unwrap() error {
	return ErrDanglingReference
}

// IsDangling returns true if err is or wraps a ReferenceError.
func IsDangling(err error) bool {
	var ref *ReferenceError
	return errors.As(err, &ref)
}
