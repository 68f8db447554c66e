package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"missionlog/internal/calendar"
	"missionlog/internal/ui"
)

func newAnchorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "anchor [yyyy-mm-dd]",
		Short: "Show or set the target date the countdown runs toward",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one date argument")
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

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				if !svc.HasAnchor() {
					fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" No target date set."))
					return nil
				}
				date, err := svc.EffectiveDate()
				if err != nil {
					return err
				}
				day, _ := svc.EffectiveDay()
				fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%s (day %d)", date, day)))
				return nil
			}

			if err := svc.SetAnchor(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s\n", ui.Good.Render(ui.IconCalendar+" Target date set:"), args[0])
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("The %d-day program counts down to it.", calendar.ProgramDays)))
			return nil
		},
	}

	return cmd
}

func newDayCmd() *cobra.Command {
	var real bool

	cmd := &cobra.Command{
		Use:   "day [index]",
		Short: "Show or simulate the effective day index",
		Long: `Show the effective day index, or pin it to a simulated value.

Simulation is for trying out the program or fast-forwarding a demo; the
pinned day sticks until --real switches back to the wall clock.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one day argument")
			}
			if len(args) == 1 {
				if _, err := strconv.Atoi(args[0]); err != nil {
					return errors.New("day must be an integer")
				}
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

			out := cmd.OutOrStdout()
			if real {
				if err := svc.UseRealClock(ctx); err != nil {
					return err
				}
				fmt.Fprintln(out, ui.Good.Render("Back on the real clock."))
				return nil
			}
			if len(args) == 0 {
				day, err := svc.EffectiveDay()
				if err != nil {
					return err
				}
				mode := "clock"
				if svc.Simulated() {
					mode = "simulated"
				}
				fmt.Fprintln(out, ui.LabelValue("Day", fmt.Sprintf("%d (%s, week %d)", day, mode, svc.Week())))
				return nil
			}

			day, _ := strconv.Atoi(args[0])
			if err := svc.SimulateDay(ctx, day); err != nil {
				return err
			}
			if _, err := svc.Sync(ctx); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %d\n", ui.Warn.Render(ui.IconClock+" Simulating day"), day)
			return nil
		},
	}

	cmd.Flags().BoolVar(&real, "real", false, "Drop the simulated day and use the clock")

	return cmd
}
