package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"doaharian/internal/commands/options"
	"doaharian/internal/config"
	"doaharian/internal/printers"
	"doaharian/internal/reward"
	"doaharian/internal/screen"
)

func addShow(topLevel *cobra.Command, cfg *config.Config) {
	oo := &options.OutputOptions{}
	translate := false

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one prayer with its previous and next ids.",
		Example: `
doaharian show 12
doaharian show 12 --translate
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return oo.HandleError(runShow(cmd, cfg, args[0], translate, oo))
		},
	}
	cmd.Flags().BoolVar(&translate, "translate", false, "Watch a rewarded ad to unlock the translation.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func runShow(cmd *cobra.Command, cfg *config.Config, id string, translate bool, oo *options.OutputOptions) error {
	src, err := newSource(cfg)
	if err != nil {
		return err
	}
	d := screen.NewDetail(id)
	if err := screen.Fetch(cmd.Context(), src, d); err != nil {
		return err
	}
	p, err := d.Current()
	if errors.Is(err, screen.ErrNotFound) {
		return fmt.Errorf("%s: %s", screen.NotFoundMessage, id)
	}
	prev, next, _ := d.Neighbors()

	translation := ""
	if translate {
		ads := newAds(cfg)
		defer ads.Close()
		if notice := unlock(cmd.Context(), ads, d); notice != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), notice)
		}
		if d.Unlocked() {
			translation = reward.Translation
		}
	}

	if oo.JSON {
		return printJSON(prayerLine{ID: p.ID, Name: p.Name, Text: p.Text, Prev: prev, Next: next, Translation: translation})
	}
	printers.New().Detail(p, prev, next, translation)
	return nil
}

// unlock runs the rewarded flow once and returns the notice to show.
// Ad failures never fail the command.
func unlock(ctx context.Context, ads *reward.Machine, d *screen.Detail) string {
	wctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := ads.WaitReady(wctx); err != nil {
		if errors.Is(err, reward.ErrUnavailable) {
			return reward.Notice(err)
		}
		return "Gagal memuat iklan. Silakan coba lagi."
	}
	earned, err := ads.Show(ctx)
	if err != nil {
		return reward.Notice(err)
	}
	if earned {
		d.Unlock()
		return reward.EarnedTitle + " " + reward.EarnedMessage
	}
	return ""
}
