// Package crash is the process-wide hook for unexpected panics. It only
// logs; business code never calls into it except through Go and Recover.
package crash

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"

	"doaharian/internal/util/logx"
)

var (
	once    sync.Once
	mu      sync.Mutex
	handler = func(where string, v any, stack []byte) {
		logx.Errorf("panic in %s: %v\n%s", where, v, stack)
	}
)

// Setup installs the logging handler. Only the first call has an effect.
// report, when non-nil, also receives every panic (e.g. to print to stderr
// after the TUI has released the terminal).
func Setup(report func(where string, v any, stack []byte)) {
	once.Do(func() {
		if report == nil {
			return
		}
		mu.Lock()
		base := handler
		handler = func(where string, v any, stack []byte) {
			base(where, v, stack)
			report(where, v, stack)
		}
		mu.Unlock()
	})
}

// Stderr is a report function for Setup.
func Stderr(where string, v any, stack []byte) {
	fmt.Fprintf(os.Stderr, "doaharian: panic in %s: %v\n", where, v)
}

// Report logs a recovered panic value.
func Report(where string, v any) {
	stack := debug.Stack()
	mu.Lock()
	h := handler
	mu.Unlock()
	h(where, v, stack)
}

// Recover must be deferred directly. It logs a panic and swallows it.
func Recover(where string) {
	if v := recover(); v != nil {
		Report(where, v)
	}
}

// Go runs fn in a goroutine whose panics are logged instead of crashing
// the process.
func Go(where string, fn func()) {
	go func() {
		defer Recover(where)
		fn()
	}()
}
