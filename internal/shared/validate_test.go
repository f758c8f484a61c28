package shared

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	ID       string `validate:"required"`
	Duration int64  `validate:"min=0"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		if err := ValidateStruct(sample{ID: "x", Duration: 10}); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("invalid fields are collected", func(t *testing.T) {
		err := ValidateStruct(sample{Duration: -1})
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}

		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		if len(verr.Fields) != 2 {
			t.Fatalf("expected 2 field errors, got %d", len(verr.Fields))
		}
		if !strings.Contains(err.Error(), "sample.ID failed required") {
			t.Errorf("unexpected message: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "sample.Duration failed min=0") {
			t.Errorf("unexpected message: %s", err.Error())
		}
	})
}
