package errors

import (
	"fmt"
	"testing"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("reactor", "abc")
	if got := err.Error(); got != `reactor "abc" not found` {
		t.Errorf("Error() = %q", got)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should be true")
	}
	if IsRejected(err) {
		t.Error("IsRejected should be false")
	}
}

func TestRejectedError(t *testing.T) {
	err := NewRejectedError("refuel", "not in maintenance")
	if got := err.Error(); got != "refuel rejected: not in maintenance" {
		t.Errorf("Error() = %q", got)
	}
	if got := NewRejectedError("", "plain").Error(); got != "plain" {
		t.Errorf("Error() without operation = %q", got)
	}
	if !IsRejected(err) {
		t.Error("IsRejected should be true")
	}
}

func TestWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("resolving reactor: %w", NewNotFoundError("reactor", "x"))
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should see through wrapping")
	}

	wrapped = fmt.Errorf("command: %w", NewRejectedError("start", "no fuel"))
	if !IsRejected(wrapped) {
		t.Error("IsRejected should see through wrapping")
	}
}

func TestCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"not found", NewNotFoundError("reactor", "x"), codes.NotFound},
		{"rejected", NewRejectedError("start", "no fuel"), codes.FailedPrecondition},
		{"wrapped rejected", fmt.Errorf("x: %w", NewRejectedError("a", "b")), codes.FailedPrecondition},
		{"grpc status", status.Error(codes.Unavailable, "down"), codes.Unavailable},
		{"plain", fmt.Errorf("boom"), codes.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Code(tt.err); got != tt.want {
				t.Errorf("Code() = %v, want %v", got, tt.want)
			}
		})
	}
}
