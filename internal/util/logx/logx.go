package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

var (
	mu       sync.Mutex
	level    = Info
	buf      = make([]string, 0, 500)
	maxLines = 500
	// nil keeps the TUI screen clean; DOAHARIAN_LOG_STDERR=1 or SetOutput enables a sink
	out io.Writer
)

func SetLevel(l Level) { mu.Lock(); level = l; mu.Unlock() }

// SetOutput mirrors every retained line to w. Pass nil to disable.
func SetOutput(w io.Writer) { mu.Lock(); out = w; mu.Unlock() }

// ParseLevel maps debug|info|warn|error to a Level.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, true
	case "info":
		return Info, true
	case "warn", "warning":
		return Warn, true
	case "error":
		return Error, true
	}
	return Info, false
}

func SetLevelFromEnv() {
	if l, ok := ParseLevel(os.Getenv("DOAHARIAN_LOG_LEVEL")); ok {
		SetLevel(l)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("DOAHARIAN_LOG_STDERR"))); v != "" {
		if v != "0" && v != "false" && v != "no" {
			SetOutput(os.Stderr)
		} else {
			SetOutput(nil)
		}
	}
}

func Debugf(format string, a ...any) { logf(Debug, "DEBUG", format, a...) }
func Infof(format string, a ...any)  { logf(Info, "INFO", format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, "WARN", format, a...) }
func Errorf(format string, a ...any) { logf(Error, "ERROR", format, a...) }

func logf(l Level, tag, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	line := fmt.Sprintf("%s %-5s %s", ts, tag, fmt.Sprintf(format, a...))
	if len(buf) >= maxLines {
		// drop oldest
		copy(buf[0:], buf[1:])
		buf = buf[:len(buf)-1]
	}
	buf = append(buf, line)
	if out != nil {
		fmt.Fprintln(out, line)
	}
}

func Dump() string {
	mu.Lock()
	defer mu.Unlock()
	return strings.Join(buf, "\n")
}

func Lines() []string {
	mu.Lock()
	defer mu.Unlock()
	res := make([]string, len(buf))
	copy(res, buf)
	return res
}

// Reset drops retained lines. Used by tests.
func Reset() {
	mu.Lock()
	buf = buf[:0]
	mu.Unlock()
}
