package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	p := cfg.Params()
	if p.HireCost != 10 {
		t.Errorf("hire cost = %v, want 10", p.HireCost)
	}
	if p.PricePerMaterial != 1 {
		t.Errorf("price per material = %v, want 1", p.PricePerMaterial)
	}
	if p.DefaultEfficiency != 0.6 {
		t.Errorf("default efficiency = %v, want 0.6", p.DefaultEfficiency)
	}
	if p.Hire.WorkPower != 1 || p.Hire.Efficiency != 0.6 || p.Hire.Support != 0.1 || p.Hire.Wage != 0.2 {
		t.Errorf("hire template = %+v", p.Hire)
	}
	if cfg.Sim.TickInterval != time.Second {
		t.Errorf("tick interval = %v, want 1s", cfg.Sim.TickInterval)
	}
}

func TestLoadFileOverridesOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("economy:\n  hire_cost: 25\nsim:\n  tick_interval: 250ms\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Economy.HireCost != 25 {
		t.Errorf("hire cost = %v, want 25", cfg.Economy.HireCost)
	}
	if cfg.Economy.PricePerMaterial != 1 {
		t.Errorf("price per material = %v, want default 1", cfg.Economy.PricePerMaterial)
	}
	if cfg.Sim.TickInterval != 250*time.Millisecond {
		t.Errorf("tick interval = %v, want 250ms", cfg.Sim.TickInterval)
	}
	if cfg.Params().HireCost != 25 {
		t.Errorf("derived hire cost = %v, want 25", cfg.Params().HireCost)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CORPO_HIRE_COST", "12.5")
	t.Setenv("CORPO_STORE_BACKEND", "sqlite")
	t.Setenv("CORPO_STORE_PATH", "/tmp/corpo.db")
	t.Setenv("CORPO_TICK_INTERVAL", "2s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Economy.HireCost != 12.5 {
		t.Errorf("hire cost = %v, want 12.5", cfg.Economy.HireCost)
	}
	if cfg.Store.Backend != "sqlite" || cfg.Store.Path != "/tmp/corpo.db" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Sim.TickInterval != 2*time.Second {
		t.Errorf("tick interval = %v, want 2s", cfg.Sim.TickInterval)
	}
	if cfg.Hire.Wage != 0.2 {
		t.Errorf("unset variable changed wage to %v", cfg.Hire.Wage)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"efficiency above one", "hire:\n  efficiency: 1.5\n"},
		{"negative hire cost", "economy:\n  hire_cost: -1\n"},
		{"zero tick interval", "sim:\n  tick_interval: 0s\n"},
		{"unknown backend", "store:\n  backend: redis\n"},
		{"file without path", "store:\n  backend: file\n  path: \"\"\n"},
		{"empty stats window", "telemetry:\n  stats_window: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestOverrideStore(t *testing.T) {
	tests := []struct {
		name        string
		backend     string
		path        string
		wantBackend string
		wantPath    string
		wantErr     bool
	}{
		{"no flags", "", "", "file", "corpo-save.json", false},
		{"sqlite without path", "sqlite", "", "sqlite", "corpo-save.db", false},
		{"sqlite with path", "sqlite", "run.db", "sqlite", "run.db", false},
		{"same backend keeps path", "file", "", "file", "corpo-save.json", false},
		{"path only", "", "elsewhere.json", "file", "elsewhere.json", false},
		{"memory ignores path", "memory", "", "memory", "corpo-save.json", false},
		{"unknown backend", "redis", "", "redis", "corpo-save.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			cfg.OverrideStore(tt.backend, tt.path)
			err = cfg.Finalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg.Store.Backend != tt.wantBackend {
				t.Errorf("backend = %q, want %q", cfg.Store.Backend, tt.wantBackend)
			}
			if cfg.Store.Path != tt.wantPath {
				t.Errorf("path = %q, want %q", cfg.Store.Path, tt.wantPath)
			}
		})
	}
}

func TestFinalizeRevalidatesOverrides(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Telemetry.StatsWindow = -1
	if err := cfg.Finalize(); err == nil {
		t.Error("expected validation error after override")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Economy.HireCost = 42

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	again, err := Load(path)
	if err != nil {
		t.Fatalf("Load snapshot: %v", err)
	}
	if again.Economy.HireCost != 42 {
		t.Errorf("hire cost = %v, want 42", again.Economy.HireCost)
	}
	if again.Sim.TickInterval != cfg.Sim.TickInterval {
		t.Errorf("tick interval = %v, want %v", again.Sim.TickInterval, cfg.Sim.TickInterval)
	}
}
