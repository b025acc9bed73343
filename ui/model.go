package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/corpo/game"
)

type tickMsg time.Time

// Model is the bubbletea model for an interactive session. Ticks and key
// presses both arrive through Update, so they never run concurrently.
type Model struct {
	ctx      context.Context
	session  *game.Session
	interval time.Duration
	title    string

	hud    *HUD
	keys   keyMap
	help   help.Model
	status string
}

// New creates a model that advances g every interval.
func New(ctx context.Context, g *game.Session, title string, interval time.Duration) Model {
	return Model{
		ctx:      ctx,
		session:  g,
		interval: interval,
		title:    title,
		hud:      NewHUD(),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.session.Finished() {
			return m, nil
		}
		m.session.Update(m.ctx)
		if m.session.Finished() {
			m.status = "Tick limit reached. Press q to quit."
			return m, nil
		}
		return m, m.tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Work):
			m.session.Work(m.ctx)
			m.status = ""
		case key.Matches(msg, m.keys.Hire):
			if m.session.Hire(m.ctx) {
				m.status = fmt.Sprintf("Hired! %d on staff.", m.session.Workers())
			} else {
				m.status = fmt.Sprintf("Not enough money to hire ($%.2f needed).", m.session.Params().HireCost)
			}
		}

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}

	return m, nil
}

func (m Model) View() string {
	hud := m.hud.Render(HUDDataFrom(m.title, m.session))
	return lipgloss.JoinVertical(lipgloss.Left,
		hud,
		m.hud.renderer.Theme.Status.Render(m.status),
		m.help.View(m.keys),
	) + "\n"
}
