package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"doaharian/internal/model"
)

func TestListAndDetail(t *testing.T) {
	color.NoColor = true
	var b bytes.Buffer
	pp := &PrettyPrint{Out: &b, Width: 40}
	list := []model.Prayer{
		{Record: model.Record{ID: 1, Name: "Pagi", Text: "teks pagi"}},
		{Record: model.Record{ID: 12, Name: "Malam"}, Favorite: true},
	}
	pp.TitleWithCount("Doa Harian", len(list))
	pp.List(list, "kosong")
	out := b.String()
	if !strings.Contains(out, "Doa Harian - 2 doa") {
		t.Fatalf("title: %q", out)
	}
	if !strings.Contains(out, " 1  ☆  Pagi") || !strings.Contains(out, "12  ★  Malam") {
		t.Fatalf("rows: %q", out)
	}

	b.Reset()
	pp.List(nil, "Belum ada doa favorit")
	if strings.TrimSpace(b.String()) != "Belum ada doa favorit" {
		t.Fatalf("empty: %q", b.String())
	}

	b.Reset()
	pp.Detail(list[0], "12", "12", "")
	out = b.String()
	if !strings.Contains(out, "teks pagi") || !strings.Contains(out, "Selanjutnya »  12") || strings.Contains(out, "Terjemahan") {
		t.Fatalf("detail: %q", out)
	}
}
