package commands

import (
	"time"

	"github.com/spf13/cobra"

	"doaharian/internal/config"
	"doaharian/internal/reward"
	"doaharian/internal/screen"
	"doaharian/internal/source"
	"doaharian/internal/util/logx"
)

func New(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "doaharian",
		Short:         "Daily prayers (doa harian) in the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, cfg)
		},
	}
	cfg.BindFlags(cmd.PersistentFlags())

	AddCommands(cmd, cfg)
	return cmd
}

func AddCommands(topLevel *cobra.Command, cfg *config.Config) {
	addBrowse(topLevel, cfg)
	addList(topLevel, cfg)
	addShow(topLevel, cfg)
	addServe(topLevel, cfg)
	addVersion(topLevel)
}

// newSource validates the configuration and builds the prayer source.
func newSource(cfg *config.Config) (screen.Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logx.Infof("config: %s", cfg.String())
	if cfg.SourceFile != "" {
		return source.File{Path: cfg.SourceFile}, nil
	}
	return source.NewClient(cfg.BaseURL, cfg.TableID, cfg.Token, cfg.Timeout()), nil
}

// newAds builds the rewarded-ad machine; callers must Close it.
func newAds(cfg *config.Config) *reward.Machine {
	var p reward.Provider = reward.Disabled{}
	if cfg.Ads == config.AdsDemo {
		p = reward.Demo{LoadDelay: 500 * time.Millisecond, Watch: cfg.AdWatch()}
	}
	return reward.NewMachine(p, reward.DefaultOptions())
}
