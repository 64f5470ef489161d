// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"testing"
	"time"
)

const pollInterval = 20 * time.Millisecond

// WaitFor polls condition until it returns true, failing the test once
// timeout has elapsed. Scheduler and server tests use it to wait on
// background goroutines.
//
//	testutil.WaitFor(t, 5*time.Second, "reactor to burn fuel", func() bool {
//	    fuel, _ := reg.Fuel(key, id)
//	    return fuel < 90
//	})
func WaitFor(t testing.TB, timeout time.Duration, message string, condition func() bool) {
	t.Helper()

	if condition() {
		return
	}

	start := time.Now()
	deadline := start.Add(timeout)
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	attempts := 1
	for range ticker.C {
		attempts++
		if condition() {
			t.Logf("Condition met after %v (%d attempts): %s", time.Since(start).Round(time.Millisecond), attempts, message)
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("Timeout waiting for %s (waited %v, %d attempts)", message, timeout, attempts)
		}
	}
}
