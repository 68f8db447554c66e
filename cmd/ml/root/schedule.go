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

func newScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <id> <yyyy-mm-dd>",
		Short: "Park a mission for a specific date",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("mission id and date are required")
			}
			if _, err := time.Parse(calendar.DateLayout, args[1]); err != nil {
				return fmt.Errorf("invalid date %q, want yyyy-mm-dd", args[1])
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

			res, err := svc.Schedule(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconCalendar+" Scheduled"),
				res.Instance.Title,
				ui.Muted.Render("for "+args[1]),
			)
			return nil
		},
	}

	return cmd
}
