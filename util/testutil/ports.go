package testutil

import (
	"fmt"
	"net"
	"sync"
)

var (
	// handedOut remembers ports already returned so rapid calls never repeat one
	handedOut   = make(map[int]bool)
	handedOutMu sync.Mutex
)

// GetFreePort returns a TCP port on localhost that was free a moment ago and
// has not been returned before in this process. Panics if no port can be
// found.
func GetFreePort() int {
	handedOutMu.Lock()
	defer handedOutMu.Unlock()

	for attempt := 0; attempt < 100; attempt++ {
		listener, err := net.Listen("tcp", "localhost:0")
		if err != nil {
			panic(fmt.Sprintf("failed to get free port: %v", err))
		}
		port := listener.Addr().(*net.TCPAddr).Port
		listener.Close()

		if !handedOut[port] {
			handedOut[port] = true
			return port
		}
	}
	panic("failed to get a unique free port after 100 attempts")
}

// GetFreeAddress returns "localhost:<port>" for a port from GetFreePort
func GetFreeAddress() string {
	return fmt.Sprintf("localhost:%d", GetFreePort())
}
