package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"missionlog/internal/calendar"
	"missionlog/internal/ledger"
	"missionlog/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show countdown, points, rank and streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openStyled(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Mission Status"))

			if !svc.HasAnchor() {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" No target date set. Run: ml anchor <yyyy-mm-dd>"))
				return nil
			}

			day, err := svc.EffectiveDay()
			if err != nil {
				return err
			}
			remaining := calendar.ProgramDays - day
			snap := svc.Snapshot()
			rank := svc.Rank()

			fmt.Fprintln(out, ui.LabelValue("Day", fmt.Sprintf("%d (week %d)", day, svc.Week())))
			switch {
			case remaining > 0:
				fmt.Fprintln(out, ui.LabelValue("Remaining", fmt.Sprintf("%d days to target", remaining)))
			case remaining == 0:
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Target date reached"))
			default:
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s %d days past target, overdue missions in effect", ui.IconClock, -remaining)))
			}
			if svc.Simulated() {
				fmt.Fprintln(out, ui.Muted.Render("  (simulated day, run `ml day --real` to return to the clock)"))
			}
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.LabelValue("Rank", fmt.Sprintf("%s %s (tier %d)", rank.Icon, rank.Name, rank.Level)))
			next, ok := nextTier(rank)
			if ok {
				fmt.Fprintln(out, ui.LabelValue("Points", fmt.Sprintf("%d (next rank at %d)", snap.Points, next.MinPoints)))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Points", fmt.Sprintf("%d (top rank)", snap.Points)))
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconStreak, snap.Streak)))
			fmt.Fprintln(out, ui.LabelValue("Completed", snap.CompletedCount()))
			fmt.Fprintln(out, ui.LabelValue("Badges", len(snap.Badges)))
			return nil
		},
	}

	return cmd
}

func nextTier(cur ledger.Tier) (ledger.Tier, bool) {
	for _, t := range ledger.Tiers {
		if t.Level == cur.Level+1 {
			return t, true
		}
	}
	return ledger.Tier{}, false
}
