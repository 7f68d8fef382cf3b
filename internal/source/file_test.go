package source

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doaharian/internal/export"
	"doaharian/internal/model"
)

func TestFileRoundTripsExport(t *testing.T) {
	list := model.Attach([]model.Record{
		{ID: 4, Name: "Doa Sesudah Makan", Text: "الحمد لله"},
		{ID: 9, Name: "Doa Keluar Masjid", Text: "اللهم إني أسألك"},
	})
	var buf bytes.Buffer
	if err := export.WriteNDJSON(&buf, list); err != nil {
		t.Fatalf("export: %v", err)
	}
	path := filepath.Join(t.TempDir(), "doa.ndjson")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := File{Path: path}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != 4 || recs[1].Name != "Doa Keluar Masjid" || recs[1].Text != "اللهم إني أسألك" {
		t.Fatalf("recs=%+v", recs)
	}
}

func TestReadLinesTableFieldNames(t *testing.T) {
	in := `{"id":1,"Nama Doa":"Doa Tidur","Lafadz Doa":"باسمك"}

{"id":2,"Nama Doa":"Doa Bangun","Lafadz Doa":"الحمد"}
`
	recs, err := readLines(context.Background(), strings.NewReader(in), 0)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(recs) != 2 || recs[0].Name != "Doa Tidur" || recs[1].Text != "الحمد" {
		t.Fatalf("recs=%+v", recs)
	}
}

func TestReadLinesBadLine(t *testing.T) {
	_, err := readLines(context.Background(), strings.NewReader("{\"id\":1}\nnot json\n"), 0)
	if !errors.Is(err, ErrFetchFailure) || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("err=%v", err)
	}
}

func TestFileMissing(t *testing.T) {
	_, err := File{Path: filepath.Join(t.TempDir(), "nope")}.Fetch(context.Background())
	if !errors.Is(err, ErrFetchFailure) {
		t.Fatalf("err=%v", err)
	}
}
