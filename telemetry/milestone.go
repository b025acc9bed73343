package telemetry

import (
	"fmt"
	"log/slog"
)

// MilestoneType identifies the type of milestone.
type MilestoneType string

const (
	MilestoneFirstHire         MilestoneType = "first_hire"
	MilestoneTeamSize          MilestoneType = "team_size"
	MilestoneMoney             MilestoneType = "money"
	MilestonePayrollUnderwater MilestoneType = "payroll_underwater"
	MilestoneStalled           MilestoneType = "stalled"
)

var (
	teamSizeThresholds = []int{5, 10, 25, 50, 100}
	moneyThresholds    = []float64{100, 1_000, 10_000, 100_000}
)

// Milestone represents an automatically detected moment in the company's history.
type Milestone struct {
	Type        MilestoneType `csv:"type"`
	Tick        int64         `csv:"tick"`
	Description string        `csv:"description"`
}

// Log logs the milestone.
func (m Milestone) Log(log *slog.Logger) {
	log.Info("milestone",
		"type", string(m.Type),
		"tick", m.Tick,
		"description", m.Description,
	)
}

// MilestoneDetector detects notable moments from consecutive windows.
type MilestoneDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	maxWorkers  int
	maxMoney    float64
	underwater  bool // last window lost money on payroll
	stalledSeen bool // a stall was reported and activity has not resumed
}

// NewMilestoneDetector creates a detector with the given history size.
func NewMilestoneDetector(historySize int) *MilestoneDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &MilestoneDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Seed records balances that were already reached before detection started,
// so a resumed company does not re-announce old milestones.
func (md *MilestoneDetector) Seed(workers int, money float64) {
	md.maxWorkers = workers
	md.maxMoney = money
}

// Check analyzes the latest stats and returns any triggered milestones.
func (md *MilestoneDetector) Check(stats WindowStats) []Milestone {
	var milestones []Milestone

	milestones = append(milestones, md.checkTeamSize(stats)...)
	milestones = append(milestones, md.checkMoney(stats)...)

	if m := md.checkPayroll(stats); m != nil {
		milestones = append(milestones, *m)
	}

	md.addToHistory(stats)

	if m := md.checkStalled(stats); m != nil {
		milestones = append(milestones, *m)
	}

	return milestones
}

func (md *MilestoneDetector) addToHistory(stats WindowStats) {
	md.history[md.historyIdx] = stats
	md.historyIdx = (md.historyIdx + 1) % md.historySize
	if md.historyIdx == 0 {
		md.historyFull = true
	}
}

func (md *MilestoneDetector) checkTeamSize(stats WindowStats) []Milestone {
	var out []Milestone
	if md.maxWorkers == 0 && stats.Workers > 0 {
		out = append(out, Milestone{
			Type:        MilestoneFirstHire,
			Tick:        stats.WindowEndTick,
			Description: "First worker hired",
		})
	}
	for _, threshold := range teamSizeThresholds {
		if md.maxWorkers < threshold && stats.Workers >= threshold {
			out = append(out, Milestone{
				Type:        MilestoneTeamSize,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("Team reached %d workers", threshold),
			})
		}
	}
	if stats.Workers > md.maxWorkers {
		md.maxWorkers = stats.Workers
	}
	return out
}

func (md *MilestoneDetector) checkMoney(stats WindowStats) []Milestone {
	var out []Milestone
	for _, threshold := range moneyThresholds {
		if md.maxMoney < threshold && stats.Money >= threshold {
			out = append(out, Milestone{
				Type:        MilestoneMoney,
				Tick:        stats.WindowEndTick,
				Description: fmt.Sprintf("Money reached %.0f", threshold),
			})
		}
	}
	if stats.Money > md.maxMoney {
		md.maxMoney = stats.Money
	}
	return out
}

// checkPayroll fires when wages first exceed income, and again only after
// the company has recovered in between.
func (md *MilestoneDetector) checkPayroll(stats WindowStats) *Milestone {
	losing := stats.Workers > 0 && stats.NetIncome < 0
	defer func() { md.underwater = losing }()
	if !losing || md.underwater {
		return nil
	}
	return &Milestone{
		Type:        MilestonePayrollUnderwater,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Wages %.2f exceeded income %.2f", stats.WagesPaid, stats.MoneyGained),
	}
}

// checkStalled fires once the whole history window produced nothing.
func (md *MilestoneDetector) checkStalled(stats WindowStats) *Milestone {
	if stats.Ticks > stats.IdleTicks {
		md.stalledSeen = false
		return nil
	}
	if md.stalledSeen || !md.historyFull {
		return nil
	}
	for _, h := range md.history {
		if h.Ticks > h.IdleTicks {
			return nil
		}
	}
	md.stalledSeen = true
	return &Milestone{
		Type:        MilestoneStalled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No production for %d windows", md.historySize),
	}
}
