package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"missionlog/internal/ui"
)

func newDeferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "defer <id>",
		Aliases: []string{"postpone"},
		Short:   "Postpone a mission with no target date",
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

			res, err := svc.Postpone(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Warn.Render(ui.IconClock+" Postponed"),
				res.Instance.Title,
				ui.Muted.Render("(schedule it with `ml schedule` when ready)"),
			)
			return nil
		},
	}

	return cmd
}
