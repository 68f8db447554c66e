package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"missionlog/internal/ledger"
	"missionlog/internal/ui"
)

func newBadgesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "badges",
		Short: "Show unlocked achievements",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openStyled(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap := svc.Snapshot()
			unlockedOn := make(map[string]string, len(snap.Badges))
			for _, b := range snap.Badges {
				unlockedOn[b.ID] = b.UnlockedDate
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Achievements"))
			for _, def := range ledger.Achievements {
				date, held := unlockedOn[def.ID]
				switch {
				case held:
					fmt.Fprintf(out, "%s %s %s %s\n",
						def.Icon, ui.Gold.Render(def.Title),
						ui.Muted.Render(fmt.Sprintf("(%s, +%d pts)", def.Rarity, def.XPReward)),
						ui.Dim.Render(date))
					fmt.Fprintln(out, ui.Dim.Render("   "+def.Description))
				case all:
					fmt.Fprintf(out, "🔒 %s %s\n",
						ui.Muted.Render(def.Title),
						ui.Dim.Render(fmt.Sprintf("(%s, +%d pts)", def.Rarity, def.XPReward)))
				}
			}
			if len(snap.Badges) == 0 && !all {
				fmt.Fprintln(out, ui.Muted.Render("(nothing yet, run `ml badges --all` to see what is out there)"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Also show locked achievements")

	return cmd
}

func newRanksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranks",
		Short: "Show the rank ladder",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openStyled(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cur := svc.Rank()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Rank Ladder"))
			for _, t := range ledger.Tiers {
				if t.MinPoints < 0 {
					continue
				}
				line := fmt.Sprintf("%s T%-2d %-20s %s", t.Icon, t.Level, t.Name, ui.Muted.Render(fmt.Sprintf("%d pts", t.MinPoints)))
				if t.Level == cur.Level {
					line += " " + ui.Gold.Render("← you")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	return cmd
}
