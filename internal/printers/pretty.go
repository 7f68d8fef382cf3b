// Package printers renders prayers for the non-interactive CLI commands.
package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"doaharian/internal/model"
)

const (
	starOn  = "★"
	starOff = "☆"
)

type PrettyPrint struct {
	Out   io.Writer
	Width int
}

func New() *PrettyPrint { return &PrettyPrint{Out: color.Output, Width: 72} }

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	_, _ = t.Fprint(pp.Out, title)
	_, _ = c.Fprintf(pp.Out, " - %d doa\n", count)
}

// List prints one row per prayer, or empty when list has none.
func (pp *PrettyPrint) List(list []model.Prayer, empty string) {
	if len(list) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(pp.Out, "  %s\n", empty)
		return
	}
	star := color.New(color.FgRed)
	id := color.New(color.FgHiYellow, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.Width)
	for _, p := range list {
		s := starOff
		if p.Favorite {
			s = starOn
		}
		tbl.AddRow(id.Sprint(p.ID), star.Sprint(s), p.Name)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

// Detail prints one prayer with its ring neighbours.
func (pp *PrettyPrint) Detail(p model.Prayer, prev, next string, translation string) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	_, _ = bold.Fprintln(pp.Out, p.Name)
	_, _ = fmt.Fprintln(pp.Out)
	_, _ = fmt.Fprintln(pp.Out, wordwrap.String(p.Text, pp.Width))
	if translation != "" {
		_, _ = fmt.Fprintln(pp.Out)
		_, _ = color.New(color.FgGreen, color.Bold).Fprintln(pp.Out, "Terjemahan:")
		_, _ = fmt.Fprintln(pp.Out, wordwrap.String(translation, pp.Width))
	}
	_, _ = fmt.Fprintln(pp.Out)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(faint.Sprint("« Sebelumnya"), prev, faint.Sprint("Selanjutnya »"), next)
	_, _ = fmt.Fprintln(pp.Out, tbl)
}

// Error prints a failure line the way the screens word it.
func (pp *PrettyPrint) Error(msg string) {
	_, _ = color.New(color.FgRed).Fprintln(pp.Out, "Error: "+msg)
}
