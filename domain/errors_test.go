package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDomainError_Error(t *testing.T) {
	err := NewParseError("a.py", errors.New("unexpected token"))
	msg := err.Error()

	if !strings.HasPrefix(msg, "["+ErrCodeParseError+"]") {
		t.Errorf("expected code prefix, got %q", msg)
	}
	if !strings.Contains(msg, "a.py") || !strings.Contains(msg, "unexpected token") {
		t.Errorf("expected entry and cause in message, got %q", msg)
	}

	if got := NewValidationError("bad").Error(); got != "[INVALID_INPUT] bad" {
		t.Errorf("unexpected message without cause: %q", got)
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	err := NewBatchFatalError("ingestion cancelled", context.Canceled)
	if !errors.Is(err, context.Canceled) {
		t.Error("expected the cause to be reachable with errors.Is")
	}
}

func TestIsCode(t *testing.T) {
	inner := NewUnrecognizedExtensionError("notes.md")
	outer := NewEntryFailureError("notes.md", inner)
	wrapped := fmt.Errorf("context: %w", outer)

	tests := []struct {
		name string
		err  error
		code string
		want bool
	}{
		{"outer code", outer, ErrCodeEntryFailure, true},
		{"nested code", outer, ErrCodeUnrecognizedExtension, true},
		{"through fmt wrapping", wrapped, ErrCodeUnrecognizedExtension, true},
		{"absent code", outer, ErrCodeParseError, false},
		{"plain error", errors.New("x"), ErrCodeEntryFailure, false},
		{"nil", nil, ErrCodeEntryFailure, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode(%v, %s) = %v, want %v", tt.err, tt.code, got, tt.want)
			}
		})
	}
}

func TestErrInsufficientInput(t *testing.T) {
	wrapped := fmt.Errorf("compare: %w", ErrInsufficientInput)
	if !errors.Is(wrapped, ErrInsufficientInput) {
		t.Error("expected the sentinel to survive wrapping")
	}
	if !IsCode(wrapped, ErrCodeInsufficientInput) {
		t.Error("expected the sentinel to carry its code")
	}
	if errors.Is(NewComputationFatalError("malformed", nil), ErrInsufficientInput) {
		t.Error("unrelated errors must not match the sentinel")
	}
}

func TestCategorizedError(t *testing.T) {
	orig := NewConfigError("bad", nil)
	ce := &CategorizedError{Category: ErrorCategoryConfig, Message: "Configuration error", Original: orig}

	if ce.Error() != orig.Error() {
		t.Errorf("expected original message, got %q", ce.Error())
	}
	if !errors.Is(ce, orig) {
		t.Error("expected Unwrap to expose the original error")
	}

	bare := &CategorizedError{Message: "only message"}
	if bare.Error() != "only message" {
		t.Errorf("expected message fallback, got %q", bare.Error())
	}
}
