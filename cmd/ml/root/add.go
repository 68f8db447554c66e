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

func newAddCmd() *cobra.Command {
	var desc string
	var date string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a custom mission",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if date != "" {
				if _, err := time.Parse(calendar.DateLayout, date); err != nil {
					return fmt.Errorf("invalid date %q, want yyyy-mm-dd", date)
				}
			}

			ctx := context.Background()
			svc, cleanup, err := openStyled(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.AddCustom(ctx, args[0], desc, date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				ui.Good.Render(ui.IconPlus+" Added"),
				res.Instance.Title,
				ui.Muted.Render(fmt.Sprintf("(%s, +%d pts on completion)", res.Instance.ID, res.Instance.Points)),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&desc, "desc", "m", "", "Mission description")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Target date (default: active immediately)")

	return cmd
}

func newRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a custom mission",
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

			if err := svc.RemoveCustom(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Removed "+args[0]))
			return nil
		},
	}

	return cmd
}
