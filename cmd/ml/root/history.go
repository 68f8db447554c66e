package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"missionlog/internal/ledger"
	"missionlog/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the mission record, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openStyled(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Mission Record"))

			shown := 0
			for _, in := range svc.Snapshot().History {
				if failedOnly && in.State != ledger.StateFailed {
					continue
				}
				if limit > 0 && shown >= limit {
					break
				}
				shown++

				mark := ui.Good.Render("✓")
				note := ""
				if in.State == ledger.StateFailed {
					mark = ui.Bad.Render("✗")
					if in.Penalized {
						note = " " + ui.Bad.Render(fmt.Sprintf("(-%d pts)", ledger.RestorePenalty))
					} else if in.RestoredCount == 0 {
						note = " " + ui.Muted.Render("(restorable)")
					}
				}
				fmt.Fprintf(out, "%s %s %s %s%s\n",
					mark, ui.Muted.Render(in.CompletedDate), ui.Key.Render(in.ID), in.Title, note)
			}
			if shown == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(no history yet)"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Max entries to show (0 for all)")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only show failed missions")

	return cmd
}
