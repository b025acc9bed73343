package game

import "github.com/pthm-cable/corpo/economy"

// LogState logs the current company state.
func (g *Session) LogState() {
	s := g.State()
	g.log.Info("company state",
		"tick", g.tick,
		"work_buffer", s.WorkBuffer,
		"money", s.Money,
		"admin_fees", s.AdminFees,
		"workers", len(s.Workers),
		"payroll", economy.WageBill(s.Workers),
		"can_hire", g.CanHire(),
	)
}
