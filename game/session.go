// Package game runs a company session: it owns the live state, applies
// player actions, drives the tick stepper and persists every mutation.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/corpo/config"
	"github.com/pthm-cable/corpo/economy"
	"github.com/pthm-cable/corpo/registry"
	"github.com/pthm-cable/corpo/store"
	"github.com/pthm-cable/corpo/telemetry"
)

// Session holds the complete company state.
//
// A Session is single-threaded: exactly one action or tick runs at a time.
// Run serializes ticks and commands on one goroutine; other drivers must do
// the same.
type Session struct {
	params economy.Params
	fields *store.Fields
	log    *slog.Logger

	// State
	workBuffer float64
	money      float64
	adminFees  float64
	registry   *registry.Registry
	tick       int64
	lastReport economy.Report

	autopilot      Autopilot
	maxTicks       int64
	stepsPerUpdate int

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	milestones    *telemetry.MilestoneDetector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewSession loads the persisted state from kv and prepares a session.
// Missing or corrupt fields start from zero. The session takes ownership
// of kv and closes it in Close.
func NewSession(ctx context.Context, cfg *config.Config, kv store.Store, opts Options) (*Session, error) {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	fields := store.NewFields(kv, log)
	loaded := fields.LoadState(ctx)

	reg, err := registry.New(loaded.Workers)
	if err != nil {
		// LoadState already rejects duplicates and invalid workers.
		return nil, fmt.Errorf("building registry: %w", err)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	g := &Session{
		params:         cfg.Params(),
		fields:         fields,
		log:            log,
		workBuffer:     loaded.WorkBuffer,
		money:          loaded.Money,
		adminFees:      loaded.AdminFees,
		registry:       reg,
		autopilot:      opts.Autopilot,
		maxTicks:       opts.MaxTicks,
		stepsPerUpdate: max(opts.StepsPerUpdate, 1),
		collector:      telemetry.NewCollector(opts.StatsWindow),
		perfCollector:  telemetry.NewPerfCollector(opts.PerfWindow),
		milestones:     telemetry.NewMilestoneDetector(opts.MilestoneHistorySize),
		outputManager:  om,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
	}
	g.milestones.Seed(reg.Len(), loaded.Money)

	log.Info("session loaded",
		"work_buffer", g.workBuffer,
		"money", g.money,
		"admin_fees", g.adminFees,
		"workers", reg.Len(),
	)
	return g, nil
}

// State returns a consistent snapshot of the company.
func (g *Session) State() economy.State {
	s := g.scalars()
	s.Workers = g.registry.Snapshot()
	return s
}

func (g *Session) scalars() economy.State {
	return economy.State{
		WorkBuffer: g.workBuffer,
		Money:      g.money,
		AdminFees:  g.adminFees,
	}
}

// Params returns the economy parameters in effect.
func (g *Session) Params() economy.Params { return g.params }

// Tick returns the number of ticks run in this session.
func (g *Session) Tick() int64 { return g.tick }

// LastReport returns the report of the most recent tick.
func (g *Session) LastReport() economy.Report { return g.lastReport }

// Workers returns the number of hired workers.
func (g *Session) Workers() int { return g.registry.Len() }

// CanHire reports whether a hire would succeed right now.
func (g *Session) CanHire() bool {
	return economy.CanHire(g.scalars(), g.params)
}

// Work performs one click of manual work.
func (g *Session) Work(ctx context.Context) {
	next := economy.DoWork(g.scalars(), g.params)
	g.workBuffer = next.WorkBuffer
	g.collector.RecordWork()
	g.persist(store.KeyWorkBuffer, func() error { return g.fields.SaveWorkBuffer(ctx, g.workBuffer) })
}

// Hire attempts to hire a worker. With insufficient funds it does nothing
// and returns false.
func (g *Session) Hire(ctx context.Context) bool {
	next, w, err := economy.Hire(g.scalars(), g.params, g.registry.NextID)
	if errors.Is(err, economy.ErrInsufficientFunds) {
		g.collector.RecordDeclinedHire()
		g.log.Debug("hire declined", "money", g.money, "hire_cost", g.params.HireCost)
		return false
	}
	if err := g.registry.Add(w); err != nil {
		g.log.Error("hire rejected by registry", "error", err)
		return false
	}

	g.money = next.Money
	g.collector.RecordHire()
	// Workers are saved before money, so losing the second write leaves an
	// unpaid worker instead of a paid one that never arrived.
	g.persist(store.KeyWorkers, func() error { return g.fields.SaveWorkers(ctx, g.registry.Snapshot()) })
	g.persist(store.KeyMoney, func() error { return g.fields.SaveMoney(ctx, g.money) })

	g.log.Debug("hired worker", "id", w.ID, "money", g.money, "workers", g.registry.Len())
	return true
}

// Advance lets the autopilot act and then runs one tick.
func (g *Session) Advance(ctx context.Context) economy.Report {
	g.autopilot.apply(ctx, g)
	return g.Step(ctx)
}

// Step runs a single tick of the simulation.
func (g *Session) Step(ctx context.Context) economy.Report {
	g.perfCollector.BeginTick()

	g.perfCollector.Enter(telemetry.PhaseSnapshot)
	s := g.State()

	g.perfCollector.Enter(telemetry.PhaseStep)
	next, rep := economy.Step(s, g.params)

	g.perfCollector.Enter(telemetry.PhasePersist)
	if !rep.Idle {
		g.workBuffer = next.WorkBuffer
		g.money = next.Money
		g.adminFees = next.AdminFees
		g.persist(store.KeyWorkBuffer, func() error { return g.fields.SaveWorkBuffer(ctx, g.workBuffer) })
		g.persist(store.KeyMoney, func() error { return g.fields.SaveMoney(ctx, g.money) })
		g.persist(store.KeyAdminFees, func() error { return g.fields.SaveAdminFees(ctx, g.adminFees) })
	}
	g.tick++
	g.lastReport = rep

	g.perfCollector.Enter(telemetry.PhaseTelemetry)
	g.collector.RecordTick(rep)
	if err := g.outputManager.WriteTick(telemetry.NewTickRecord(g.tick, rep, next)); err != nil {
		g.log.Error("failed to write ledger", "error", err)
	}
	g.flushTelemetry(next, rep.Contributions)

	g.perfCollector.EndTick()
	return rep
}

// persist runs one store write, timing it under key. Writes are
// fire-and-forget: a failure is logged and the in-memory state stays
// authoritative.
func (g *Session) persist(key string, write func() error) {
	start := time.Now()
	err := write()
	g.perfCollector.RecordWrite(key, time.Since(start))
	if err != nil {
		g.log.Error("failed to persist state", "key", key, "error", err)
	}
}

// Close flushes output and closes the store.
func (g *Session) Close() error {
	return errors.Join(g.outputManager.Close(), g.fields.Close())
}
