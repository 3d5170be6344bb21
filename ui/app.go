package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ftahirops/xinfo/model"
)

// Page identifies the current screen.
type Page int

const (
	PageDrives Page = iota
	PageTemps
	PageFlavors
	pageCount
)

var pageNames = []string{"Drives", "Temperatures", "Flavors"}

// Source produces snapshots; *engine.Engine implements it.
type Source interface {
	Tick(ctx context.Context) *model.Snapshot
	Refresh()
	TempSeries(drive string) []int
}

type tickMsg time.Time

type collectMsg struct {
	snap *model.Snapshot
}

// Model is the bubbletea model.
type Model struct {
	ctx      context.Context
	source   Source
	interval time.Duration
	width    int
	height   int

	snap       *model.Snapshot
	collecting bool

	page     Page
	selected int // drive index on the Drives page
	showHelp bool
	paused   bool
}

// NewModel creates a new TUI model.
func NewModel(ctx context.Context, source Source, interval time.Duration) Model {
	return Model{
		ctx:        ctx,
		source:     source,
		interval:   interval,
		width:      100,
		collecting: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), collectOnce(m.ctx, m.source))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func collectOnce(ctx context.Context, source Source) tea.Cmd {
	return func() tea.Msg {
		return collectMsg{snap: source.Tick(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			m.showHelp = true
		case "tab", "right", "l":
			m.page = (m.page + 1) % pageCount
		case "shift+tab", "left", "h":
			m.page = (m.page + pageCount - 1) % pageCount
		case "1":
			m.page = PageDrives
		case "2":
			m.page = PageTemps
		case "3":
			m.page = PageFlavors
		case "j", "down":
			if m.snap != nil && m.selected < len(m.snap.Drives)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "a":
			m.paused = !m.paused
			if !m.paused {
				return m, tick(m.interval)
			}
		case "r":
			if !m.collecting {
				m.source.Refresh()
				m.collecting = true
				return m, collectOnce(m.ctx, m.source)
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.paused {
			return m, nil
		}
		cmds := []tea.Cmd{tick(m.interval)}
		// Skip a tick while a slow collection is still running.
		if !m.collecting {
			m.collecting = true
			cmds = append(cmds, collectOnce(m.ctx, m.source))
		}
		return m, tea.Batch(cmds...)

	case collectMsg:
		m.collecting = false
		if msg.snap != nil {
			m.snap = msg.snap
			if m.selected >= len(m.snap.Drives) {
				m.selected = 0
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.renderTabs() + "\n\n")

	switch {
	case m.showHelp:
		sb.WriteString(renderHelp())
	case m.snap == nil:
		sb.WriteString(" " + dimStyle.Render("collecting...") + "\n")
	default:
		switch m.page {
		case PageDrives:
			sb.WriteString(renderDrivesPage(m.snap, m.selected, m.width))
		case PageTemps:
			sb.WriteString(renderTempsPage(m.snap, m.source.TempSeries, m.width))
		case PageFlavors:
			sb.WriteString(renderFlavorsPage(m.snap, m.width))
		}
	}

	sb.WriteString("\n" + m.renderStatus())
	return sb.String()
}

func (m Model) renderTabs() string {
	var parts []string
	for i, name := range pageNames {
		label := fmt.Sprintf(" %d %s ", i+1, name)
		if Page(i) == m.page {
			parts = append(parts, selectedStyle.Render(label))
		} else {
			parts = append(parts, dimStyle.Render(label))
		}
	}
	return " " + headerStyle.Render("xinfo") + "  " + strings.Join(parts, " ")
}

func (m Model) renderStatus() string {
	var parts []string
	if m.snap != nil {
		if h := m.snap.Host; h != nil {
			parts = append(parts, h.Hostname+" ("+h.Virtualization+")")
		}
		parts = append(parts, "updated "+m.snap.Timestamp.Format("15:04:05"))
		if len(m.snap.Errors) > 0 {
			parts = append(parts, critStyle.Render(fmt.Sprintf("%d errors", len(m.snap.Errors))))
		}
	}
	if m.paused {
		parts = append(parts, orangeStyle.Render("PAUSED"))
	}
	if m.collecting {
		parts = append(parts, "refreshing")
	}
	parts = append(parts, "? help  q quit")
	return " " + helpStyle.Render(strings.Join(parts, " · "))
}

func renderHelp() string {
	return renderKVBox("Keys", []kv{
		{"tab / 1-3", "switch page"},
		{"j / k", "select drive"},
		{"r", "refresh now, drops cached inventory"},
		{"a", "pause or resume auto refresh"},
		{"q", "quit"},
	}, 56)
}
