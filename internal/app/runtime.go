package app

import (
	"os"
	"sync/atomic"
)

const testModeEnv = "STERN_TEST_MODE"

var testMode atomic.Int32 // 0 unread, 1 off, 2 on

// InTestMode reports whether the binaries should skip runtime startup, so
// package-level tests can import main without opening sockets. The flag is
// read from STERN_TEST_MODE on first use and cached.
func InTestMode() bool {
	switch testMode.Load() {
	case 1:
		return false
	case 2:
		return true
	}
	RefreshTestMode()
	return testMode.Load() == 2
}

// RefreshTestMode re-reads the environment, for tests that toggle the flag.
func RefreshTestMode() {
	if os.Getenv(testModeEnv) == "1" {
		testMode.Store(2)
		return
	}
	testMode.Store(1)
}
