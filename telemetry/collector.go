// Package telemetry tracks the company's economy over windows of ticks,
// detects milestones and writes CSV output.
package telemetry

import "github.com/pthm-cable/corpo/economy"

// Collector accumulates events within windows of ticks and produces WindowStats.
type Collector struct {
	windowDurationTicks int64

	// Current window tracking
	windowStartTick int64

	// Event counters for current window
	ticks         int
	idleTicks     int
	workClicks    int
	hires         int
	declinedHires int

	totalWork   float64
	materials   float64
	overhead    float64
	moneyGained float64
	wagesPaid   float64
}

// NewCollector creates a new stats collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowDurationTicks: int64(windowTicks)}
}

// RecordWork records a manual work click.
func (c *Collector) RecordWork() {
	c.workClicks++
}

// RecordHire records a successful hire.
func (c *Collector) RecordHire() {
	c.hires++
}

// RecordDeclinedHire records a hire refused for lack of funds.
func (c *Collector) RecordDeclinedHire() {
	c.declinedHires++
}

// RecordTick folds one tick's report into the window.
func (c *Collector) RecordTick(rep economy.Report) {
	c.ticks++
	if rep.Idle {
		c.idleTicks++
		return
	}
	c.totalWork += rep.TotalWork
	c.materials += rep.Materials
	c.overhead += rep.Overhead
	c.moneyGained += rep.MoneyGain
	c.wagesPaid += rep.WageBill
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// s is the state at window end; contributions are the per-worker outputs of
// the last tick.
func (c *Collector) Flush(currentTick int64, s economy.State, contributions []float64) WindowStats {
	mean, std, p10, p50, p90 := ComputeStats(contributions)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Ticks:         c.ticks,
		IdleTicks:     c.idleTicks,
		WorkClicks:    c.workClicks,
		Hires:         c.hires,
		DeclinedHires: c.declinedHires,

		TotalWork:   c.totalWork,
		Materials:   c.materials,
		Overhead:    c.overhead,
		MoneyGained: c.moneyGained,
		WagesPaid:   c.wagesPaid,
		NetIncome:   c.moneyGained - c.wagesPaid,

		Money:      s.Money,
		AdminFees:  s.AdminFees,
		WorkBuffer: s.WorkBuffer,
		Workers:    len(s.Workers),

		ContribMean: mean,
		ContribStd:  std,
		ContribP10:  p10,
		ContribP50:  p50,
		ContribP90:  p90,
	}

	// Reset for next window
	*c = Collector{
		windowDurationTicks: c.windowDurationTicks,
		windowStartTick:     currentTick,
	}

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int64 {
	return c.windowDurationTicks
}
