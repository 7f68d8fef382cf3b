package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"doaharian/internal/model"
	"doaharian/internal/util/logx"
)

// File reads prayers from newline-delimited JSON, either as written by
// `list --export json` or with the table's own field names. Path "-" reads
// stdin.
type File struct {
	Path string
	// MaxLine bounds a single line in bytes.
	MaxLine int
}

// fileLine accepts both field spellings.
type fileLine struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	NamaDoa  string `json:"Nama Doa"`
	Lafadz   string `json:"Lafadz Doa"`
}

func (f File) Fetch(ctx context.Context) ([]model.Record, error) {
	var r io.Reader
	if f.Path == "-" {
		r = os.Stdin
	} else {
		fh, err := os.Open(f.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
		}
		defer fh.Close()
		r = fh
	}
	recs, err := readLines(ctx, r, f.MaxLine)
	if err != nil {
		logx.Warnf("source: %s: %v", f.Path, err)
		return nil, err
	}
	logx.Infof("source: read %d prayers from %s", len(recs), f.Path)
	return recs, nil
}

func readLines(ctx context.Context, r io.Reader, maxLine int) ([]model.Record, error) {
	if maxLine <= 0 {
		maxLine = 1024 * 1024
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)
	out := []model.Record{}
	n := 0
	for scanner.Scan() {
		n++
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var l fileLine
		if err := json.Unmarshal([]byte(text), &l); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrFetchFailure, n, err)
		}
		rec := model.Record{ID: l.ID, Name: l.Name, Text: l.Text}
		if rec.Name == "" {
			rec.Name = l.NamaDoa
		}
		if rec.Text == "" {
			rec.Text = l.Lafadz
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	return out, nil
}
