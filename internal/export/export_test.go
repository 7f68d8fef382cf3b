package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doaharian/internal/model"
)

func prayers() []model.Prayer {
	return []model.Prayer{
		{Record: model.Record{ID: 1, Name: "Doa Pagi", Text: "اللهم"}},
		{Record: model.Record{ID: 2, Name: "Doa, Malam", Text: "بسم"}, Favorite: true},
	}
}

func TestWriteCSV(t *testing.T) {
	var b bytes.Buffer
	if err := WriteCSV(&b, prayers()); err != nil {
		t.Fatalf("csv: %v", err)
	}
	want := "id,name,text,favorite\n1,Doa Pagi,اللهم,false\n2,\"Doa, Malam\",بسم,true\n"
	if b.String() != want {
		t.Fatalf("got %q", b.String())
	}
	if err := WriteCSV(&b, nil); err == nil {
		t.Fatalf("expected error for empty list")
	}
}

func TestWriteNDJSON(t *testing.T) {
	var b bytes.Buffer
	if err := WriteNDJSON(&b, prayers()); err != nil {
		t.Fatalf("ndjson: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 2 || lines[1] != `{"id":2,"name":"Doa, Malam","text":"بسم","favorite":true}` {
		t.Fatalf("lines: %q", lines)
	}
}

func TestToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.csv")
	if err := ToFile(p, CSV, prayers()); err != nil {
		t.Fatalf("to file: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil || !strings.HasPrefix(string(b), "id,name") {
		t.Fatalf("file: %q %v", b, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatalf("expected format error")
	}
}
