package reactor

import (
	perrors "github.com/xiaonanln/plantsim/util/errors"
)

// Result is the outcome of a reactor command: either Ok, or Rejected with a
// reason. A rejected command leaves the reactor untouched.
type Result struct {
	rejected bool
	reason   string
}

// Ok returns a successful Result
func Ok() Result {
	return Result{}
}

// Rejected returns a Result refusing the command for reason
func Rejected(reason string) Result {
	return Result{rejected: true, reason: reason}
}

// OK reports whether the command was applied
func (r Result) OK() bool {
	return !r.rejected
}

// Reason returns the rejection reason, or "" for Ok
func (r Result) Reason() string {
	return r.reason
}

// Err converts a rejection into a *errors.RejectedError for operation.
// It returns nil for Ok.
func (r Result) Err(operation string) error {
	if !r.rejected {
		return nil
	}
	return perrors.NewRejectedError(operation, r.reason)
}

func (r Result) String() string {
	if !r.rejected {
		return "Ok"
	}
	return "Rejected(" + r.reason + ")"
}
