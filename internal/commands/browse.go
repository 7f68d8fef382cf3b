package commands

import (
	"github.com/spf13/cobra"

	"doaharian/internal/config"
	"doaharian/internal/ui"
)

func addBrowse(topLevel *cobra.Command, cfg *config.Config) {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse prayers interactively (default).",
		Example: `
doaharian
doaharian browse --theme light --ads off
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, cfg)
		},
	}
	topLevel.AddCommand(cmd)
}

func runBrowse(cmd *cobra.Command, cfg *config.Config) error {
	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	ads := newAds(cfg)
	defer ads.Close()
	return ui.Run(cmd.Context(), cfg, src, ads)
}
