// Package leaktest checks that a test leaves no goroutines behind.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	DefaultSettleTimeout = 500 * time.Millisecond
	pollInterval         = 10 * time.Millisecond
	stackDumpSize        = 64 << 10
)

// GoroutineChecker compares the goroutine count against a baseline
type GoroutineChecker struct {
	t       testing.TB
	before  int
	timeout time.Duration
}

// NewGoroutineChecker records the current goroutine count as the baseline
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()
	runtime.Gosched()
	return &GoroutineChecker{
		t:       t,
		before:  runtime.NumGoroutine(),
		timeout: DefaultSettleTimeout,
	}
}

// WithTimeout changes how long Check waits for the count to settle
func (g *GoroutineChecker) WithTimeout(d time.Duration) *GoroutineChecker {
	g.timeout = d
	return g
}

// Leaked returns how many goroutines exceed the baseline after waiting for
// the count to drop to baseline+tolerance
func (g *GoroutineChecker) Leaked(tolerance int) int {
	deadline := time.Now().Add(g.timeout)
	for {
		leaked := runtime.NumGoroutine() - g.before
		if leaked <= tolerance || time.Now().After(deadline) {
			return leaked
		}
		runtime.Gosched()
		time.Sleep(pollInterval)
	}
}

// Check fails the test when more than tolerance goroutines outlive the baseline.
// The stacks of every live goroutine are logged to locate the leak.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	if leaked := g.Leaked(tolerance); leaked > tolerance {
		buf := make([]byte, stackDumpSize)
		n := runtime.Stack(buf, true)
		g.t.Errorf("goroutine leak: baseline=%d leaked=%d tolerance=%d\n%s",
			g.before, leaked, tolerance, buf[:n])
	}
}

// Verify registers a Check at test cleanup
func Verify(t testing.TB, tolerance int) {
	t.Helper()
	g := NewGoroutineChecker(t)
	t.Cleanup(func() { g.Check(tolerance) })
}
