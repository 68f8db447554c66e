package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"missionlog/internal/ledger"
	"missionlog/internal/ui"
)

func newTodayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "today",
		Short: "List the missions in force right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openStyled(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			active, err := svc.Active()
			if err != nil {
				return err
			}
			day, _ := svc.EffectiveDay()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconMission, fmt.Sprintf("Day %d Missions", day)))
			if len(active) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("(all clear, nothing pending)"))
				return nil
			}
			for _, in := range active {
				tag := ""
				if in.Priority == ledger.PriorityHighest {
					tag = " " + ui.Bad.Render("LAST CHANCE")
				}
				fmt.Fprintf(out, "%s %s %s %s%s\n",
					ui.MissionIcon(in),
					ui.Key.Render(in.ID),
					in.Title,
					ui.Muted.Render(fmt.Sprintf("(+%d pts)", in.Points)),
					tag,
				)
				if in.Description != "" {
					fmt.Fprintln(out, ui.Dim.Render("   "+in.Description))
				}
			}
			return nil
		},
	}

	return cmd
}
