package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"doaharian/internal/commands/options"
	"doaharian/internal/config"
	"doaharian/internal/export"
	"doaharian/internal/printers"
	"doaharian/internal/screen"
	"doaharian/internal/util/logx"
)

func addList(topLevel *cobra.Command, cfg *config.Config) {
	fo := &options.FilterOptions{}
	eo := &options.ExportOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the prayer list, optionally filtered.",
		Example: `
doaharian list
doaharian list -q makan
doaharian list --mark 3,7 --favorites
doaharian list --where 'id >= 10' --export csv --out doa.csv
`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if eo.Format != "" {
				if _, err := export.ParseFormat(eo.Format); err != nil {
					return err
				}
				if eo.Out == "" {
					return fmt.Errorf("--export requires --out path")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return oo.HandleError(runList(cmd, cfg, fo, eo, oo))
		},
	}

	options.AddFilterArgs(cmd, fo)
	options.AddExportArgs(cmd, eo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func runList(cmd *cobra.Command, cfg *config.Config, fo *options.FilterOptions, eo *options.ExportOptions, oo *options.OutputOptions) error {
	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	l := screen.NewList()
	if err := screen.Fetch(cmd.Context(), src, l); err != nil {
		return err
	}
	for _, id := range fo.Mark {
		l.ToggleFavorite(id)
	}
	c := fo.Criteria()
	if err := l.SetExpr(c.Expr); err != nil {
		return fmt.Errorf("invalid --where: %w", err)
	}
	l.SetQuery(c.Query)
	l.SetFavoritesOnly(c.FavoritesOnly)

	visible := l.Visible()
	if eo.Format != "" {
		f, _ := export.ParseFormat(eo.Format)
		if err := export.ToFile(eo.Out, f, visible); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		logx.Infof("export: wrote %d prayers to %s (%s)", len(visible), eo.Out, f)
	}

	if oo.JSON {
		return export.WriteNDJSON(color.Output, visible)
	}
	pp := printers.New()
	pp.TitleWithCount("Doa Harian", len(visible))
	pp.List(visible, l.EmptyMessage())
	if eo.Format != "" {
		_, _ = fmt.Fprintf(color.Output, "exported %d prayers to %s\n", len(visible), eo.Out)
	}
	return nil
}

// prayerLine is the --json shape for a single prayer.
type prayerLine struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Text        string `json:"text"`
	Prev        string `json:"prev"`
	Next        string `json:"next"`
	Translation string `json:"translation,omitempty"`
}

func printJSON(v any) error {
	enc := json.NewEncoder(color.Output)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
