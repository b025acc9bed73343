package game

import "github.com/pthm-cable/corpo/economy"

// flushTelemetry checks if the stats window should be flushed and handles milestones.
func (g *Session) flushTelemetry(s economy.State, contributions []float64) {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, s, contributions)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats(g.log)
		perfStats.LogStats(g.log)
		g.LogState()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		g.log.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.log.Error("failed to write perf", "error", err)
	}

	for _, m := range g.milestones.Check(stats) {
		if g.logStats {
			m.Log(g.log)
		}
		if err := g.outputManager.WriteMilestone(m); err != nil {
			g.log.Error("failed to write milestone", "error", err)
		}
	}
}
