package telemetry

import "testing"

func findMilestone(ms []Milestone, typ MilestoneType) bool {
	for _, m := range ms {
		if m.Type == typ {
			return true
		}
	}
	return false
}

func TestMilestoneDetector_FirstHireAndTeamSize(t *testing.T) {
	md := NewMilestoneDetector(5)

	if ms := md.Check(WindowStats{WindowEndTick: 60, Ticks: 60}); len(ms) != 0 {
		t.Errorf("unexpected milestones for empty company: %+v", ms)
	}

	ms := md.Check(WindowStats{WindowEndTick: 120, Ticks: 60, Workers: 1})
	if !findMilestone(ms, MilestoneFirstHire) {
		t.Error("expected first_hire milestone")
	}

	ms = md.Check(WindowStats{WindowEndTick: 180, Ticks: 60, Workers: 12})
	count := 0
	for _, m := range ms {
		if m.Type == MilestoneTeamSize {
			count++
		}
	}
	if count != 2 {
		t.Errorf("team_size milestones = %d, want 2 (5 and 10)", count)
	}

	if ms := md.Check(WindowStats{WindowEndTick: 240, Ticks: 60, Workers: 12}); findMilestone(ms, MilestoneTeamSize) {
		t.Error("team size milestone repeated")
	}
}

func TestMilestoneDetector_Money(t *testing.T) {
	md := NewMilestoneDetector(5)

	ms := md.Check(WindowStats{Ticks: 1, Money: 150})
	if !findMilestone(ms, MilestoneMoney) {
		t.Error("expected money milestone at 100")
	}

	// Dipping and recovering does not re-announce.
	md.Check(WindowStats{Ticks: 1, Money: 20})
	if ms := md.Check(WindowStats{Ticks: 1, Money: 160}); findMilestone(ms, MilestoneMoney) {
		t.Error("money milestone repeated")
	}
}

func TestMilestoneDetector_Seed(t *testing.T) {
	md := NewMilestoneDetector(5)
	md.Seed(7, 500)

	ms := md.Check(WindowStats{Ticks: 1, Workers: 7, Money: 500})
	if len(ms) != 0 {
		t.Errorf("seeded detector re-announced: %+v", ms)
	}
}

func TestMilestoneDetector_PayrollUnderwater(t *testing.T) {
	md := NewMilestoneDetector(5)

	losing := WindowStats{Ticks: 10, Workers: 3, MoneyGained: 1, WagesPaid: 2, NetIncome: -1}
	if ms := md.Check(losing); !findMilestone(ms, MilestonePayrollUnderwater) {
		t.Error("expected payroll_underwater milestone")
	}
	if ms := md.Check(losing); findMilestone(ms, MilestonePayrollUnderwater) {
		t.Error("payroll milestone should only fire on the transition")
	}

	md.Check(WindowStats{Ticks: 10, Workers: 3, NetIncome: 2})
	if ms := md.Check(losing); !findMilestone(ms, MilestonePayrollUnderwater) {
		t.Error("expected payroll milestone after recovery")
	}
}

func TestMilestoneDetector_Stalled(t *testing.T) {
	md := NewMilestoneDetector(3)
	idle := WindowStats{Ticks: 60, IdleTicks: 60}

	md.Check(idle)
	md.Check(idle)
	ms := md.Check(idle)
	if !findMilestone(ms, MilestoneStalled) {
		t.Fatal("expected stalled milestone once the history is idle")
	}
	if ms := md.Check(idle); findMilestone(ms, MilestoneStalled) {
		t.Error("stalled milestone repeated without activity")
	}

	md.Check(WindowStats{Ticks: 60, IdleTicks: 10})
	md.Check(idle)
	md.Check(idle)
	if ms := md.Check(idle); !findMilestone(ms, MilestoneStalled) {
		t.Error("expected stalled milestone after activity resumed and stopped")
	}
}
