package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm-cable/corpo/config"
	"github.com/pthm-cable/corpo/game"
	"github.com/pthm-cable/corpo/store"
	"github.com/pthm-cable/corpo/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without the terminal UI")
	realtime := flag.Bool("realtime", false, "Headless: tick on the wall clock instead of back-to-back")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = use config)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per tick signal (higher = faster runs)")
	autoWork := flag.Int("auto-work", 0, "Work clicks performed automatically before every tick")
	autoHire := flag.Bool("auto-hire", false, "Hire automatically whenever affordable")
	storeBackend := flag.String("store", "", "State store backend: memory, file or sqlite (empty = use config)")
	storePath := flag.String("store-path", "", "State store path (empty = use config)")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg.OverrideStore(*storeBackend, *storePath)
	if *maxTicks > 0 {
		cfg.Sim.MaxTicks = *maxTicks
	}
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	if err := cfg.Finalize(); err != nil {
		slog.Error("invalid command line overrides", "error", err)
		os.Exit(1)
	}

	// JSON to stdout in headless mode. The terminal UI owns stdout, so logs
	// go to stderr there.
	logOut := os.Stdout
	if !*headless {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := store.Open(cfg.Store.Backend, cfg.Store.Path)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.Store.Backend, "path", cfg.Store.Path, "error", err)
		os.Exit(1)
	}

	opts := game.OptionsFromConfig(cfg)
	opts.LogStats = *logStats
	opts.OutputDir = *outputDir
	opts.StepsPerUpdate = *stepsPerUpdate
	opts.Autopilot = game.Autopilot{WorkPerTick: *autoWork, HireWhenAffordable: *autoHire}
	opts.Logger = logger

	g, err := game.NewSession(ctx, cfg, kv, opts)
	if err != nil {
		kv.Close()
		slog.Error("failed to start session", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to close session", "error", err)
		}
	}()

	if !*headless {
		p := tea.NewProgram(ui.New(ctx, g, "Corpo", cfg.Sim.TickInterval), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			slog.Error("terminal UI failed", "error", err)
		}
		return
	}

	slog.Info("starting headless simulation",
		"realtime", *realtime,
		"tick_interval", cfg.Sim.TickInterval,
		"max_ticks", cfg.Sim.MaxTicks,
		"steps_per_update", *stepsPerUpdate,
		"auto_work", *autoWork,
		"auto_hire", *autoHire,
	)

	if *realtime {
		src := game.NewWallTicker(cfg.Sim.TickInterval)
		defer src.Stop()
		if err := g.Run(ctx, src, nil); err != nil && ctx.Err() == nil {
			slog.Error("simulation stopped", "error", err)
		}
	} else {
		for !g.Finished() && ctx.Err() == nil {
			g.Update(ctx)
		}
	}

	g.LogState()
}
