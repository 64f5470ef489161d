package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// NotFoundError reports that a tenant-scoped resource, such as a reactor ID
// within a plant, does not exist. Tenants themselves are never "not found".
type NotFoundError struct {
	Resource string
	ID       string
}

// Error returns a human-readable error message.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// RejectedError reports a command refused by the reactor state machine.
// The target is left exactly as it was.
type RejectedError struct {
	Operation string
	Reason    string
}

// Error returns the rejection reason, prefixed by the operation when known.
func (e *RejectedError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("%s rejected: %s", e.Operation, e.Reason)
	}
	return e.Reason
}

// NewRejectedError creates a new RejectedError.
func NewRejectedError(operation, reason string) *RejectedError {
	return &RejectedError{Operation: operation, Reason: reason}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsRejected reports whether err is, or wraps, a RejectedError.
func IsRejected(err error) bool {
	var re *RejectedError
	return errors.As(err, &re)
}

// Code classifies err into a gRPC status code. Typed core errors map to
// NotFound and FailedPrecondition; gRPC status errors keep their own code.
func Code(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if IsNotFound(err) {
		return codes.NotFound
	}
	if IsRejected(err) {
		return codes.FailedPrecondition
	}
	if s, ok := status.FromError(err); ok {
		return s.Code()
	}
	return codes.Unknown
}
