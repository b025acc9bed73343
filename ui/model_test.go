package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/corpo/config"
	"github.com/pthm-cable/corpo/game"
	"github.com/pthm-cable/corpo/store"
)

func newTestModel(t *testing.T, opts game.Options) (Model, *game.Session) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	if opts.StatsWindow == 0 {
		opts.StatsWindow = cfg.Telemetry.StatsWindow
	}
	g, err := game.NewSession(context.Background(), cfg, store.NewMemory(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return New(context.Background(), g, "Corpo", time.Second), g
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestWorkKeys(t *testing.T) {
	m, g := newTestModel(t, game.Options{})

	m, _ = update(t, m, runeKey('w'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})

	assert.Equal(t, 2.0, g.State().WorkBuffer)
}

func TestHireKeyReportsDecline(t *testing.T) {
	m, g := newTestModel(t, game.Options{})

	m, _ = update(t, m, runeKey('h'))

	assert.Zero(t, g.Workers())
	assert.Contains(t, m.View(), "Not enough money")
}

func TestTickAdvancesSession(t *testing.T) {
	m, g := newTestModel(t, game.Options{})

	for i := 0; i < 20; i++ {
		m, _ = update(t, m, runeKey('w'))
	}
	m, cmd := update(t, m, tickMsg(time.Now()))

	assert.NotNil(t, cmd, "tick should schedule the next tick")
	assert.Equal(t, int64(1), g.Tick())
	assert.InDelta(t, 12.0, g.State().Money, 1e-9)

	m, _ = update(t, m, runeKey('h'))
	assert.Equal(t, 1, g.Workers())
	assert.Contains(t, m.View(), "Hired!")
}

func TestTickStopsAtLimit(t *testing.T) {
	m, g := newTestModel(t, game.Options{MaxTicks: 1})

	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.True(t, g.Finished())

	_, cmd = update(t, m, tickMsg(time.Now()))
	assert.Nil(t, cmd)
	assert.Equal(t, int64(1), g.Tick())
}

func TestQuitKeys(t *testing.T) {
	m, _ := newTestModel(t, game.Options{})

	for _, msg := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}} {
		_, cmd := update(t, m, msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestViewShowsBalances(t *testing.T) {
	m, _ := newTestModel(t, game.Options{})

	view := m.View()
	for _, want := range []string{"Corpo", "Money", "Workers", "Next hire", "idle"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}
