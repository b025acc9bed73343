package game

import (
	"log/slog"

	"github.com/pthm-cable/corpo/config"
	"github.com/pthm-cable/corpo/telemetry"
)

// Options configures a Session.
type Options struct {
	LogStats  bool   // Log window stats, perf and milestones
	OutputDir string // Directory for CSV output (empty = disabled)
	MaxTicks  int64  // Run stops after this many ticks (0 = unlimited)

	StepsPerUpdate int // Ticks run per tick signal (0 = 1)

	StatsWindow          int // Ticks per stats window
	PerfWindow           int
	MilestoneHistorySize int

	Autopilot Autopilot

	Logger        *slog.Logger
	StatsCallback func(telemetry.WindowStats)
}

// OptionsFromConfig fills the telemetry and scheduling fields from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxTicks:             int64(cfg.Sim.MaxTicks),
		StatsWindow:          cfg.Telemetry.StatsWindow,
		PerfWindow:           cfg.Telemetry.PerfCollectorWindow,
		MilestoneHistorySize: cfg.Telemetry.MilestoneHistorySize,
	}
}
