package game

import "context"

// Autopilot plays on the player's behalf before every tick.
type Autopilot struct {
	WorkPerTick        int  // Manual work clicks per tick
	HireWhenAffordable bool // Keep hiring while funds allow
}

func (a Autopilot) apply(ctx context.Context, g *Session) {
	for i := 0; i < a.WorkPerTick; i++ {
		g.Work(ctx)
	}
	if a.HireWhenAffordable {
		for g.CanHire() {
			if !g.Hire(ctx) {
				break
			}
		}
	}
}
