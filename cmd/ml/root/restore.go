package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"missionlog/internal/calendar"
	"missionlog/internal/ui"
)

func newRestoreCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "restore <id>",
		Short: "Give a failed mission its second chance",
		Long: `Restore a failed mission out of history and back onto the schedule.

The restored mission comes back at highest priority. This is a one-shot
deal: if it expires again it fails for good, with a point deduction.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("mission id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openStyled(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			target := date
			if target == "" {
				target, err = svc.EffectiveDate()
				if err != nil {
					return err
				}
			} else if _, err := time.Parse(calendar.DateLayout, target); err != nil {
				return fmt.Errorf("invalid date %q, want yyyy-mm-dd", target)
			}

			res, err := svc.Restore(ctx, args[0], target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconFlag+" Restored"),
				res.Instance.Title,
				ui.Muted.Render("for "+target),
			)
			fmt.Fprintln(cmd.OutOrStdout(), ui.Bad.Render(ui.IconWarn+" Last chance: missing it again costs points."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Target date (defaults to today)")

	return cmd
}
