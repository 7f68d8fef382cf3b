package export

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"doaharian/internal/model"
)

type Format string

const (
	CSV    Format = "csv"
	NDJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case CSV, NDJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q: want csv|json", s)
}

// ToFile writes the prayers to path in the given format.
func ToFile(path string, f Format, list []model.Prayer) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	switch f {
	case CSV:
		err = WriteCSV(out, list)
	case NDJSON:
		err = WriteNDJSON(out, list)
	default:
		err = fmt.Errorf("unknown export format %q", f)
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

var columns = []string{"id", "name", "text", "favorite"}

func WriteCSV(w io.Writer, list []model.Prayer) error {
	if len(list) == 0 {
		return errors.New("no prayers")
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, p := range list {
		row := []string{strconv.Itoa(p.ID), p.Name, p.Text, strconv.FormatBool(p.Favorite)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type line struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	Favorite bool   `json:"favorite"`
}

func WriteNDJSON(w io.Writer, list []model.Prayer) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for _, p := range list {
		if err := enc.Encode(line{ID: p.ID, Name: p.Name, Text: p.Text, Favorite: p.Favorite}); err != nil {
			return err
		}
	}
	return bw.Flush()
}
