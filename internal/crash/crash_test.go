package crash

import (
	"strings"
	"sync"
	"testing"
	"time"

	"doaharian/internal/util/logx"
)

func TestGoRecoversAndLogs(t *testing.T) {
	logx.Reset()
	var wg sync.WaitGroup
	wg.Add(1)
	Go("worker", func() {
		defer wg.Done()
		panic("kaboom")
	})
	wg.Wait()
	// Done fires before Recover logs.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(logx.Dump(), "panic in worker: kaboom") {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("panic not logged: %q", logx.Dump())
}

func TestRecoverSwallows(t *testing.T) {
	logx.Reset()
	func() {
		defer Recover("inline")
		var m map[string]int
		m["x"] = 1
	}()
	if !strings.Contains(logx.Dump(), "panic in inline") {
		t.Fatalf("not logged: %q", logx.Dump())
	}
}
