package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"missionlog/internal/ledger"
)

// Mission log theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconMission  = "🎯"
	IconSparkle  = "✨"
	IconPlus     = "➕"
	IconDone     = "✅"
	IconTrophy   = "🏆"
	IconBolt     = "⚡"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconFlag     = "🚩"
	IconClock    = "⏰"
	IconScroll   = "📜"
	IconCalendar = "📅"
	IconStreak   = "🔥"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgePromotion = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("PROMOTION")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StateText renders a mission state with its conventional color.
func StateText(state ledger.State) string {
	switch state {
	case ledger.StateCompleted:
		return Good.Render("completed")
	case ledger.StateFailed:
		return Bad.Render("failed")
	case ledger.StateActive:
		return H2.Render("active")
	case ledger.StatePostponed:
		return Warn.Render("postponed")
	case ledger.StateScheduled:
		return Warn.Render("scheduled")
	default:
		return Muted.Render(string(state))
	}
}

// MissionIcon picks the leading glyph for a mission row.
func MissionIcon(in ledger.Instance) string {
	switch {
	case in.BigMilestone:
		return IconTrophy
	case in.IsCustom():
		return IconPlus
	case in.Priority == ledger.PriorityHighest:
		return IconFlag
	default:
		return IconMission
	}
}
