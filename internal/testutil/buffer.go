package testutil

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// DumpOnFailure logs the buffer at the end of a failed test, or of every
// test when RIPPLE_TEST_LOGS=true.
func DumpOnFailure(t *testing.T, name string, b *SafeBuffer) {
	t.Helper()
	t.Cleanup(func() {
		if t.Failed() || os.Getenv("RIPPLE_TEST_LOGS") == "true" {
			t.Logf("--- %s for %s ---\n%s", name, t.Name(), b.String())
		}
	})
}
