package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrAlreadyExists,
		ErrNotFound,
		ErrInvalidCredentials,
		ErrValidation,
		ErrTrackingAttached,
		ErrInvalidTransition,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Fatalf("sentinels %v and %v must be distinct", a, b)
			}
		}
	}
}

func TestWrappedSentinelMatches(t *testing.T) {
	wrapped := fmt.Errorf("validate request: %w", ErrValidation)
	if !errors.Is(wrapped, ErrValidation) {
		t.Fatal("expected wrapped error to match ErrValidation")
	}
}
