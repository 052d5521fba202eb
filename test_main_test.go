package recycler

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/grindlemire/go-recycler/internal/debug"
)

// testLog captures engine diagnostics for every test in the package.
// It is installed in TestMain before any tests run.
var testLog syncBuffer

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// take returns everything logged so far and resets the buffer.
func (b *syncBuffer) take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.buf.String()
	b.buf.Reset()
	return s
}

func TestMain(m *testing.M) {
	debug.SetOutput(&testLog)
	code := m.Run()
	debug.SetOutput(nil)
	os.Exit(code)
}
