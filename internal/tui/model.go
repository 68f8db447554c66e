package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"missionlog/internal/engine"
	"missionlog/internal/ledger"
	"missionlog/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	day     int
	week    int
	snap    ledger.Ledger
	rank    ledger.Tier
	active  []ledger.Instance
	history []ledger.Instance

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	day     int
	week    int
	snap    ledger.Ledger
	rank    ledger.Tier
	active  []ledger.Instance
	history []ledger.Instance
	err     error
}

type mutatedMsg struct {
	verb string
	res  engine.MutationResult
	err  error
}

// tickMsg drives the background refresh so the board crosses day
// boundaries without a keypress.
type tickMsg time.Time

const refreshEvery = 30 * time.Second

func tickCmd() tea.Cmd {
	return tea.Tick(refreshEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), tickCmd())
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.Sync(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		day, err := m.svc.EffectiveDay()
		if err != nil {
			return loadedMsg{err: err}
		}
		active, err := m.svc.Active()
		if err != nil {
			return loadedMsg{err: err}
		}
		snap := m.svc.Snapshot()
		hist := snap.History
		if len(hist) > 8 {
			hist = hist[:8]
		}
		return loadedMsg{
			day:     day,
			week:    m.svc.Week(),
			snap:    snap,
			rank:    m.svc.Rank(),
			active:  active,
			history: hist,
		}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Complete(m.ctx, id)
		return mutatedMsg{verb: "Completed", res: res, err: err}
	}
}

func (m boardModel) postponeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Postpone(m.ctx, id)
		return mutatedMsg{verb: "Postponed", res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), tickCmd())
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.day = msg.day
		m.week = msg.week
		m.snap = msg.snap
		m.rank = msg.rank
		m.active = msg.active
		m.history = msg.history
		if m.selected >= len(m.active) {
			m.selected = len(m.active) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case mutatedMsg:
		if msg.err != nil {
			m.lastLog = msg.verb + " failed: " + msg.err.Error()
			return m, nil
		}
		line := fmt.Sprintf("%s %s", msg.verb, msg.res.Instance.ID)
		if msg.res.PointsAwarded > 0 {
			line += fmt.Sprintf(": +%d pts, streak %d", msg.res.PointsAwarded, msg.res.Streak)
		}
		if msg.res.RankUp {
			line += fmt.Sprintf(" | promoted to %s", msg.res.Rank.Name)
		}
		for _, def := range msg.res.Unlocked {
			line += fmt.Sprintf(" | unlocked %s", def.Title)
		}
		m.lastLog = line
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.active)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			if m.selected < 0 || m.selected >= len(m.active) {
				return m, nil
			}
			in := m.active[m.selected]
			m.lastLog = fmt.Sprintf("Completing %s…", in.ID)
			return m, m.completeCmd(in.ID)
		case "p":
			if m.selected < 0 || m.selected >= len(m.active) {
				return m, nil
			}
			in := m.active[m.selected]
			m.lastLog = fmt.Sprintf("Postponing %s…", in.ID)
			return m, m.postponeCmd(in.ID)
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.loading {
		return "Mission Log — loading…"
	}
	bar := rankBar(m.snap.Points, m.rank, 30)
	return fmt.Sprintf("Mission Log | Day %d / Week %d | %s %s (T%d) | %d pts %s",
		m.day, m.week, m.rank.Icon, m.rank.Name, m.rank.Level, m.snap.Points, bar)
}

// rankBar shows progress from the current tier floor to the next one.
func rankBar(points int, cur ledger.Tier, width int) string {
	next, ok := nextTier(cur)
	if !ok {
		return "[" + strings.Repeat("#", width) + "]"
	}
	return progressBar(points-cur.MinPoints, next.MinPoints-cur.MinPoints, width)
}

func nextTier(cur ledger.Tier) (ledger.Tier, bool) {
	for _, t := range ledger.Tiers {
		if t.Level == cur.Level+1 {
			return t, true
		}
	}
	return ledger.Tier{}, false
}

func (m boardModel) renderSidebar() string {
	lines := []string{"Status"}
	lines = append(lines, fmt.Sprintf("- streak: %d", m.snap.Streak))
	lines = append(lines, fmt.Sprintf("- completed: %d", m.snap.CompletedCount()))
	lines = append(lines, fmt.Sprintf("- badges: %d", len(m.snap.Badges)))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- p: postpone")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Today")
	if len(m.active) == 0 {
		out = append(out, "(nothing active, all clear)")
	}
	for i, in := range m.active {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		mark := "  "
		if in.Priority == ledger.PriorityHighest {
			mark = "! "
		}
		out = append(out, fmt.Sprintf("%s%s%s (%s, %d pts)", cursor, mark, in.Title, in.ID, in.Points))
	}
	out = append(out, "")
	out = append(out, "Recent")
	if len(m.history) == 0 {
		out = append(out, "(no history yet)")
	}
	for _, in := range m.history {
		out = append(out, fmt.Sprintf("- %s %s [%s]", in.CompletedDate, in.Title, ui.StateText(in.State)))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
