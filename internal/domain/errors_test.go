package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("language", "required")

	if got := err.Error(); got != "validation: language: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "target", Message: "required"},
		{Field: "before", Message: "unknown class"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
	if len(err.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(err.Errors))
	}
}

func TestSourceError(t *testing.T) {
	t.Parallel()

	withLine := NewSourceError("tsv", 3, "missing tab")
	if got := withLine.Error(); got != "tsv source: line 3: missing tab" {
		t.Fatalf("unexpected Error(): %q", got)
	}

	noLine := NewSourceError("json", 0, "unexpected EOF")
	if got := noLine.Error(); got != "json source: unexpected EOF" {
		t.Fatalf("unexpected Error(): %q", got)
	}

	wrapped := fmt.Errorf("load en-us: %w", withLine)
	if !errors.Is(wrapped, ErrMalformedSource) {
		t.Fatal("wrapped SourceError should match ErrMalformedSource")
	}
	var se *SourceError
	if !errors.As(wrapped, &se) || se.Line != 3 {
		t.Fatalf("errors.As should recover the SourceError, got %+v", se)
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		ErrNotFound, ErrValidation, ErrMalformedSource,
		ErrNotInitialized, ErrClosed, ErrUnknownMethod,
	}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
