package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/corpo/economy"
)

func TestCollectorFlush(t *testing.T) {
	c := NewCollector(3)
	p := economy.DefaultParams()
	s := economy.State{WorkBuffer: 5}

	c.RecordWork()
	c.RecordWork()
	c.RecordDeclinedHire()

	var rep economy.Report
	s, rep = economy.Step(s, p)
	c.RecordTick(rep)
	s, rep = economy.Step(s, p)
	c.RecordTick(rep)

	if c.ShouldFlush(2) {
		t.Fatal("window of 3 should not flush at tick 2")
	}
	if !c.ShouldFlush(3) {
		t.Fatal("window of 3 should flush at tick 3")
	}

	stats := c.Flush(3, s, rep.Contributions)

	if stats.Ticks != 2 || stats.IdleTicks != 1 {
		t.Errorf("ticks/idle = %d/%d, want 2/1", stats.Ticks, stats.IdleTicks)
	}
	if stats.WorkClicks != 2 || stats.DeclinedHires != 1 || stats.Hires != 0 {
		t.Errorf("clicks/declined/hires = %d/%d/%d", stats.WorkClicks, stats.DeclinedHires, stats.Hires)
	}
	if math.Abs(stats.MoneyGained-3) > 1e-9 || math.Abs(stats.Overhead-2) > 1e-9 {
		t.Errorf("gained/overhead = %v/%v, want 3/2", stats.MoneyGained, stats.Overhead)
	}
	if stats.Money != 3 || stats.AdminFees != 2 {
		t.Errorf("balances = %v/%v, want 3/2", stats.Money, stats.AdminFees)
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 3 {
		t.Errorf("window = [%d,%d], want [0,3]", stats.WindowStartTick, stats.WindowEndTick)
	}

	// Counters reset and the next window starts where this one ended.
	if c.ShouldFlush(5) {
		t.Error("new window should start at tick 3")
	}
	next := c.Flush(6, s, nil)
	if next.Ticks != 0 || next.WorkClicks != 0 || next.MoneyGained != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 3 {
		t.Errorf("next window start = %d, want 3", next.WindowStartTick)
	}
	if c.WindowDurationTicks() != 3 {
		t.Errorf("window duration = %d, want 3", c.WindowDurationTicks())
	}
}

func TestCollectorNetIncomeAndContributions(t *testing.T) {
	c := NewCollector(1)
	p := economy.DefaultParams()
	s := economy.State{Workers: []economy.Worker{
		p.Hire.Instantiate(1),
		p.Hire.Instantiate(2),
	}}

	s, rep := economy.Step(s, p)
	c.RecordTick(rep)
	stats := c.Flush(1, s, rep.Contributions)

	if math.Abs(stats.NetIncome-(1.32-0.4)) > 1e-9 {
		t.Errorf("net income = %v, want 0.92", stats.NetIncome)
	}
	if stats.Workers != 2 {
		t.Errorf("workers = %d, want 2", stats.Workers)
	}
	if math.Abs(stats.ContribMean-1.1) > 1e-9 || stats.ContribStd > 1e-9 {
		t.Errorf("contrib mean/std = %v/%v, want 1.1/0", stats.ContribMean, stats.ContribStd)
	}
}

func TestNewCollectorClampsWindow(t *testing.T) {
	c := NewCollector(0)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("window = %d, want 1", c.WindowDurationTicks())
	}
}
