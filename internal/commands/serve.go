package commands

import (
	"github.com/spf13/cobra"

	"doaharian/internal/config"
	"doaharian/internal/crash"
	"doaharian/internal/server"
	"doaharian/internal/util/logx"
)

func addServe(topLevel *cobra.Command, cfg *config.Config) {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the prayer list and detail routes over HTTP.",
		Example: `
doaharian serve --addr :8080
curl localhost:8080/?q=makan
curl localhost:8080/prayer/12
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := newSource(cfg)
			if err != nil {
				return err
			}
			ads := newAds(cfg)
			defer ads.Close()
			ads.Load()

			srv := server.New(src, ads)
			ctx := cmd.Context()
			crash.Go("serve.refresh", func() {
				if err := srv.Refresh(ctx); err != nil {
					logx.Warnf("serve: initial fetch failed, POST /refresh to retry: %v", err)
				}
			})
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address.")
	topLevel.AddCommand(cmd)
}
