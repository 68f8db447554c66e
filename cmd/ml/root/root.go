package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"missionlog/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "ml",
	Short:         "Mission Log — a 280-day countdown mission tracker",
	Long:          "Mission Log is a local-first CLI/TUI that runs a fixed 280-day countdown program of daily missions, with points, ranks and achievements.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newStatusCmd(),
		newTodayCmd(),
		newDoCmd(),
		newDeferCmd(),
		newScheduleCmd(),
		newRestoreCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newHistoryCmd(),
		newBadgesCmd(),
		newRanksCmd(),
		newAnchorCmd(),
		newDayCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
