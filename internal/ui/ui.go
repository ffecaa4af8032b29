package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/airwave/internal/ratings"
)

// refreshInterval is how often the dashboard re-queries the aggregates.
const refreshInterval = 2 * time.Second

// Model represents the dashboard state: the latest per-song aggregates plus
// the last fetch error, if any.
type Model struct {
	ctx       context.Context
	repo      *ratings.Repository
	summaries []ratings.SongSummary
	fetched   time.Time
	err       error
	width     int
	height    int
	help      help.Model
	keys      keyMap
}

// NewModel creates the dashboard model over the given repository.
func NewModel(ctx context.Context, repo *ratings.Repository) Model {
	return Model{
		ctx:  ctx,
		repo: repo,
		help: help.New(),
		keys: newKeyMap(),
	}
}

type summariesMsg []ratings.SongSummary

type fetchErrMsg struct{ err error }

type tickMsg time.Time

// fetch queries the aggregates off the update loop.
func (m Model) fetch() tea.Cmd {
	return func() tea.Msg {
		summaries, err := m.repo.AllSummaries(m.ctx)
		if err != nil {
			return fetchErrMsg{err: err}
		}
		return summariesMsg(summaries)
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements [tea.Model].
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetch(), tick())
}

// Update implements [tea.Model].
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.refresh):
			return m, m.fetch()
		}
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetch(), tick())

	case summariesMsg:
		m.summaries = msg
		m.fetched = time.Now()
		m.err = nil
		return m, nil

	case fetchErrMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// View implements [tea.Model].
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("airwave ratings"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n\n")
	}

	if len(m.summaries) == 0 {
		b.WriteString(styles.help.Render("no ratings yet"))
		b.WriteString("\n")
	} else {
		b.WriteString(styles.header.Render(fmt.Sprintf("%-36s %6s %6s %8s %7s", "song", "up", "down", "stars", "votes")))
		b.WriteString("\n")
		for _, s := range m.summaries {
			b.WriteString(fmt.Sprintf("%-36s %6d %6d %8.1f %7d\n",
				truncate(s.SongID, 36),
				s.Sentiment.ThumbsUp,
				s.Sentiment.ThumbsDown,
				s.Star.Average,
				s.Star.Total,
			))
		}
	}

	if !m.fetched.IsZero() {
		b.WriteString(styles.ok.Render(fmt.Sprintf("\nupdated %s", m.fetched.Format("15:04:05"))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
