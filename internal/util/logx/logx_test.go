package logx

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	Reset()
	SetLevel(Warn)
	defer SetLevel(Info)
	Infof("hidden %d", 1)
	Warnf("shown %d", 2)
	lines := Lines()
	if len(lines) != 1 || !strings.Contains(lines[0], "WARN  shown 2") {
		t.Fatalf("lines: %q", lines)
	}
}

func TestRingDropsOldest(t *testing.T) {
	Reset()
	for i := 0; i < maxLines+10; i++ {
		Infof("line %d", i)
	}
	lines := Lines()
	if len(lines) != maxLines {
		t.Fatalf("len: %d", len(lines))
	}
	if !strings.HasSuffix(lines[0], "line 10") {
		t.Fatalf("oldest retained: %q", lines[0])
	}
}

func TestSetOutputMirrors(t *testing.T) {
	Reset()
	var b bytes.Buffer
	SetOutput(&b)
	defer SetOutput(nil)
	Errorf("boom")
	if !strings.Contains(b.String(), "ERROR boom") {
		t.Fatalf("sink: %q", b.String())
	}
}

func TestParseLevel(t *testing.T) {
	if l, ok := ParseLevel(" Warning "); !ok || l != Warn {
		t.Fatalf("got %v %v", l, ok)
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Fatalf("unexpected ok")
	}
}
