package main

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/corpo/config"
	"github.com/pthm-cable/corpo/game"
	"github.com/pthm-cable/corpo/store"
	"github.com/pthm-cable/corpo/telemetry"
)

// FitnessEvaluator runs headless sessions and computes fitness.
//
// A candidate is scored on pacing: how close the autopilot gets to
// targetWorkers hires at targetTick. Each candidate is played once per
// click rate so the balance holds for idle and active players alike.
type FitnessEvaluator struct {
	params        *ParamVector
	maxTicks      int64
	clickRates    []int
	targetWorkers int
	targetTick    int64
	baseConfig    *config.Config
	statsWindow   int

	mu          sync.Mutex
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, clickRates []int, targetWorkers int, targetTick int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:        params,
		maxTicks:      maxTicks,
		clickRates:    clickRates,
		targetWorkers: targetWorkers,
		targetTick:    targetTick,
		baseConfig:    baseCfg,
		statsWindow:   25,
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single session run.
type runResult struct {
	reachedTick int64 // tick the target team size was reached (-1 if never)
	workers     int
	windowStats []telemetry.WindowStats // collected via StatsCallback each window
}

// rateResult holds the result from one click rate.
type rateResult struct {
	fitness float64
	quality float64
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return math.Inf(1)
	}

	// Run all click rates in parallel; sessions share nothing.
	results := make([]rateResult, len(fe.clickRates))
	var wg sync.WaitGroup

	for i, rate := range fe.clickRates {
		wg.Add(1)
		go func(idx, clicks int) {
			defer wg.Done()
			result := fe.runSession(cfg, clicks)
			results[idx] = rateResult{
				fitness: fe.computeFitness(result),
				quality: computeQuality(result.windowStats),
			}
		}(i, rate)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}

	n := float64(len(results))
	fe.mu.Lock()
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSession plays one in-memory session with the autopilot until the
// target team size is reached or maxTicks runs out.
func (fe *FitnessEvaluator) runSession(cfg *config.Config, clicksPerTick int) *runResult {
	ctx := context.Background()
	result := &runResult{reachedTick: -1}

	g, err := game.NewSession(ctx, cfg, store.NewMemory(), game.Options{
		MaxTicks:             fe.maxTicks,
		StatsWindow:          fe.statsWindow,
		PerfWindow:           cfg.Telemetry.PerfCollectorWindow,
		MilestoneHistorySize: cfg.Telemetry.MilestoneHistorySize,
		Autopilot:            game.Autopilot{WorkPerTick: clicksPerTick, HireWhenAffordable: true},
		Logger:               slog.New(slog.DiscardHandler),
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return result
	}
	defer g.Close()

	for !g.Finished() {
		g.Advance(ctx)
		if g.Workers() >= fe.targetWorkers {
			result.reachedTick = g.Tick()
			break
		}
	}
	result.workers = g.Workers()
	return result
}

// copyConfig returns an independent copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness calculates the scalar fitness (lower = better).
// Pacing error dominates; quality breaks ties between similarly paced
// candidates. Runs that never reach the target score worse than any run
// that does.
func (fe *FitnessEvaluator) computeFitness(r *runResult) float64 {
	quality := computeQuality(r.windowStats)
	var pacing float64
	if r.reachedTick >= 0 {
		d := float64(r.reachedTick-fe.targetTick) / float64(fe.targetTick)
		pacing = d * d
	} else {
		shortfall := float64(fe.targetWorkers-r.workers) / float64(fe.targetWorkers)
		pacing = 4 + shortfall
	}
	return pacing + 0.5*(1-quality)
}

// Quality component weights.
const (
	qualityWeightSolvency  = 0.6
	qualityWeightStability = 0.4

	qualityWarmupWindows = 1 // skip the first window (nobody hired yet)
)

// computeQuality computes economy quality ∈ [0, 1] from window stats:
// the share of windows where payroll was covered by income and how steady
// net income was.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}
	valid := windows[qualityWarmupWindows:]

	var solvent int
	net := make([]float64, 0, len(valid))
	for _, w := range valid {
		if w.MoneyGained >= w.WagesPaid {
			solvent++
		}
		net = append(net, w.NetIncome)
	}

	solvencyScore := float64(solvent) / float64(len(valid))

	stabilityScore := 0.0
	if len(net) >= 2 {
		c := cv(net)
		stabilityScore = math.Exp(-c * c)
	}

	return clamp01(qualityWeightSolvency*solvencyScore + qualityWeightStability*stabilityScore)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / math.Abs(mean)
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
