package uniqueid

import (
	"github.com/google/uuid"
)

// UniqueId returns a random (version 4) UUID string. Reactor IDs are generated
// here once and stay stable for the reactor's lifetime.
func UniqueId() string {
	return uuid.NewString()
}
