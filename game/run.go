package game

import (
	"context"
	"time"
)

// Command is a player action delivered to Run.
type Command int

const (
	CommandWork Command = iota
	CommandHire
)

func (c Command) String() string {
	switch c {
	case CommandWork:
		return "work"
	case CommandHire:
		return "hire"
	default:
		return "unknown"
	}
}

// TickSource delivers tick signals. A closed channel ends Run.
type TickSource interface {
	C() <-chan time.Time
	Stop()
}

// WallTicker fires on a fixed wall-clock interval.
type WallTicker struct {
	t *time.Ticker
}

// NewWallTicker starts a ticker with the given interval.
func NewWallTicker(interval time.Duration) *WallTicker {
	return &WallTicker{t: time.NewTicker(interval)}
}

func (w *WallTicker) C() <-chan time.Time { return w.t.C }
func (w *WallTicker) Stop()               { w.t.Stop() }

// ManualTicker fires only when told to. Used for tests and batch runs.
type ManualTicker struct {
	ch chan time.Time
}

// NewManualTicker returns an unbuffered manual ticker.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{ch: make(chan time.Time)}
}

func (m *ManualTicker) C() <-chan time.Time { return m.ch }

// Fire delivers one tick. It blocks until Run receives it.
func (m *ManualTicker) Fire() { m.ch <- time.Now() }

// Stop closes the channel, which ends Run.
func (m *ManualTicker) Stop() { close(m.ch) }

// Run drives the session until ctx is cancelled, src closes or MaxTicks is
// reached. Ticks and commands are handled on the calling goroutine, so an
// action never interleaves with a tick. Returns ctx.Err() on cancellation.
func (g *Session) Run(ctx context.Context, src TickSource, cmds <-chan Command) error {
	for {
		if g.Finished() {
			g.log.Info("max ticks reached", "tick", g.tick)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-src.C():
			if !ok {
				return nil
			}
			g.Update(ctx)
		case cmd, ok := <-cmds:
			if !ok {
				cmds = nil
				continue
			}
			g.Apply(ctx, cmd)
		}
	}
}

// Apply executes a single command.
func (g *Session) Apply(ctx context.Context, cmd Command) {
	switch cmd {
	case CommandWork:
		g.Work(ctx)
	case CommandHire:
		g.Hire(ctx)
	default:
		g.log.Warn("unknown command", "command", int(cmd))
	}
}

// Finished reports whether the session reached its tick limit.
func (g *Session) Finished() bool {
	return g.maxTicks > 0 && g.tick >= g.maxTicks
}

// Update runs StepsPerUpdate ticks through Advance, stopping early at the
// tick limit.
func (g *Session) Update(ctx context.Context) {
	for i := 0; i < g.stepsPerUpdate && !g.Finished(); i++ {
		g.Advance(ctx)
	}
}
