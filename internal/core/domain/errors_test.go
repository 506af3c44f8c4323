package domain

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestError_IsMatchesKindSentinel(t *testing.T) {
	tests := []struct {
		err  *Error
		want error
	}{
		{NewInvalidIdentifier("x", "bad"), ErrInvalidIdentifier},
		{NewInvalidRequest([]string{"name: blank"}), ErrInvalidRequest},
		{NewNotFound("fetch_one", "abc"), ErrNotFound},
		{NewRateLimited("fetch_all", 0), ErrRateLimited},
		{NewExternalService("create", "boom", nil), ErrExternalService},
	}

	for _, tt := range tests {
		wrapped := fmt.Errorf("outer: %w", tt.err)
		if !errors.Is(wrapped, tt.want) {
			t.Errorf("errors.Is(%v, %v) = false, want true", wrapped, tt.want)
		}
		if errors.Is(wrapped, ErrExternalService) && tt.want != ErrExternalService {
			t.Errorf("%v unexpectedly matches ErrExternalService", tt.err)
		}
	}
}

func TestKindOf(t *testing.T) {
	err := fmt.Errorf("delete failed after 3 attempts: %w", NewRateLimited("delete", 0))
	if got := KindOf(err); got != KindRateLimited {
		t.Errorf("KindOf = %v, want %v", got, KindRateLimited)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want %v", got, KindUnknown)
	}
}

func TestError_UnwrapPreservesCause(t *testing.T) {
	err := NewExternalService("fetch_all", "failed to retrieve employees", context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	want := "fetch_all: failed to retrieve employees: context deadline exceeded"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_NotFoundMessageCarriesID(t *testing.T) {
	err := NewNotFound("fetch_one", "3fa85f64-5717-4562-b3fc-2c963f66afa6")
	if err.ID != "3fa85f64-5717-4562-b3fc-2c963f66afa6" {
		t.Errorf("ID = %q", err.ID)
	}
	want := "fetch_one: employee not found with id: 3fa85f64-5717-4562-b3fc-2c963f66afa6"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
