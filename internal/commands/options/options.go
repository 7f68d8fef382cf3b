// Package options defines shared flag helpers for CLI commands.
package options

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"doaharian/internal/filter"
)

// OutputOptions selects machine-readable output.
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().BoolVar(&o.JSON, "json", false, "Output as JSON.")
}

// HandleError prints err as a JSON object when --json is set and swallows it;
// otherwise it returns err unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		b, merr := json.Marshal(map[string]string{"error": err.Error()})
		if merr != nil {
			return merr
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}

// FilterOptions carries the list filter flags.
type FilterOptions struct {
	Query     string
	Favorites bool
	Where     string
	Mark      []string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringVarP(&o.Query, "query", "q", "", "Only prayers whose name contains this text (case-insensitive).")
	cmd.Flags().BoolVarP(&o.Favorites, "favorites", "f", false, "Only favorite prayers.")
	cmd.Flags().StringVar(&o.Where, "where", "", "Advanced filter expression over id, name, favorite (e.g. 'id >= 10').")
	cmd.Flags().StringSliceVar(&o.Mark, "mark", nil, "Mark these prayer ids as favorite for this run.")
}

func (o *FilterOptions) Criteria() filter.Criteria {
	return filter.Criteria{Query: o.Query, FavoritesOnly: o.Favorites, Expr: o.Where}
}

// ExportOptions writes the filtered view to a file.
type ExportOptions struct {
	Format string
	Out    string
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVar(&o.Format, "export", "", "Export the filtered list: csv|json.")
	cmd.Flags().StringVar(&o.Out, "out", "", "Output path for --export.")
}
