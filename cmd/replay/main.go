// Replay plays a scripted sequence of player actions through the tick
// stepper and prints the resulting ledger as CSV.
//
// Usage: go run ./cmd/replay --script actions.yaml [--out ledger.csv]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/corpo/config"
	"github.com/pthm-cable/corpo/economy"
	"github.com/pthm-cable/corpo/telemetry"
)

// Script is a replayable action log.
type Script struct {
	Start Start   `yaml:"start"`
	Ticks []Entry `yaml:"ticks"`
}

// Start is the company state the replay begins from.
type Start struct {
	WorkBuffer float64 `yaml:"work_buffer"`
	Money      float64 `yaml:"money"`
	AdminFees  float64 `yaml:"admin_fees"`
}

// Entry lists the actions taken before one tick.
type Entry struct {
	Work   int `yaml:"work"`   // Work clicks
	Hire   int `yaml:"hire"`   // Hire attempts
	Repeat int `yaml:"repeat"` // Times this entry is played (0 = 1)
}

// Result summarizes a replay.
type Result struct {
	Records  []telemetry.TickRecord
	Final    economy.State
	Hires    int
	Declined int
}

func loadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, e := range s.Ticks {
		if e.Work < 0 || e.Hire < 0 || e.Repeat < 0 {
			return nil, fmt.Errorf("ticks[%d]: counts must be >= 0", i)
		}
	}
	return &s, nil
}

// replay runs the script with the pure stepper. Hire attempts that cannot
// be afforded are counted and skipped.
func replay(script *Script, p economy.Params) Result {
	s := economy.State{
		WorkBuffer: script.Start.WorkBuffer,
		Money:      script.Start.Money,
		AdminFees:  script.Start.AdminFees,
	}
	var seq economy.Sequence
	var res Result
	var tick int64

	for _, e := range script.Ticks {
		for r := 0; r < max(e.Repeat, 1); r++ {
			for i := 0; i < e.Work; i++ {
				s = economy.DoWork(s, p)
			}
			for i := 0; i < e.Hire; i++ {
				next, _, err := economy.Hire(s, p, seq.NextID)
				if err != nil {
					res.Declined++
					continue
				}
				s = next
				res.Hires++
			}

			var rep economy.Report
			s, rep = economy.Step(s, p)
			tick++
			res.Records = append(res.Records, telemetry.NewTickRecord(tick, rep, s))
		}
	}

	res.Final = s
	return res
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	scriptPath := flag.String("script", "", "YAML action script (required)")
	outPath := flag.String("out", "", "Write the ledger here instead of stdout")
	flag.Parse()

	// stdout carries the CSV, so logs go to stderr.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *scriptPath == "" {
		slog.Error("--script is required")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	script, err := loadScript(*scriptPath)
	if err != nil {
		slog.Error("failed to load script", "path", *scriptPath, "error", err)
		os.Exit(1)
	}

	res := replay(script, cfg.Params())

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			slog.Error("failed to create output", "path", *outPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := telemetry.WriteLedger(out, res.Records); err != nil {
		slog.Error("failed to write ledger", "error", err)
		os.Exit(1)
	}

	slog.Info("replay complete",
		"ticks", len(res.Records),
		"hires", res.Hires,
		"declined_hires", res.Declined,
		"money", res.Final.Money,
		"admin_fees", res.Final.AdminFees,
		"workers", len(res.Final.Workers),
	)
}
