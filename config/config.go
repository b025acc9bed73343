// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/corpo/economy"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Economy   EconomyConfig   `yaml:"economy"`
	Hire      HireConfig      `yaml:"hire"`
	Sim       SimConfig       `yaml:"sim"`
	Store     StoreConfig     `yaml:"store"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// EconomyConfig holds the economic constants.
type EconomyConfig struct {
	PricePerMaterial  float64 `yaml:"price_per_material" env:"PRICE_PER_MATERIAL"`
	HireCost          float64 `yaml:"hire_cost" env:"HIRE_COST"`
	DefaultEfficiency float64 `yaml:"default_efficiency" env:"DEFAULT_EFFICIENCY"` // Used when nobody is employed
	WorkPerClick      float64 `yaml:"work_per_click" env:"WORK_PER_CLICK"`
}

// HireConfig is the template for newly hired workers.
type HireConfig struct {
	WorkPower  float64 `yaml:"work_power" env:"HIRE_WORK_POWER"`
	Efficiency float64 `yaml:"efficiency" env:"HIRE_EFFICIENCY"`
	Support    float64 `yaml:"support" env:"HIRE_SUPPORT"`
	Wage       float64 `yaml:"wage" env:"HIRE_WAGE"`
}

// SimConfig holds scheduling parameters.
type SimConfig struct {
	TickInterval time.Duration `yaml:"tick_interval" env:"TICK_INTERVAL"`
	MaxTicks     int           `yaml:"max_ticks" env:"MAX_TICKS"` // 0 = unlimited
}

// StoreConfig selects the persistence backend.
type StoreConfig struct {
	Backend string `yaml:"backend" env:"STORE_BACKEND"` // memory | file | sqlite
	Path    string `yaml:"path" env:"STORE_PATH"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow          int `yaml:"stats_window" env:"STATS_WINDOW"` // Ticks per window
	PerfCollectorWindow  int `yaml:"perf_collector_window" env:"PERF_COLLECTOR_WINDOW"`
	MilestoneHistorySize int `yaml:"milestone_history_size" env:"MILESTONE_HISTORY_SIZE"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Params economy.Params
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies CORPO_* environment overrides.
// If path is empty, only embedded defaults and the environment are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Finalize validates the configuration and recomputes derived values. Call
// it again after changing fields of a loaded Config.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// DefaultStorePath returns the save location used when a backend is chosen
// without a path.
func DefaultStorePath(backend string) string {
	switch backend {
	case "file":
		return "corpo-save.json"
	case "sqlite":
		return "corpo-save.db"
	}
	return ""
}

// OverrideStore replaces the store selection. An empty backend keeps the
// current one. Switching backend without a path moves the save to the new
// backend's default location, so a JSON path is never opened as SQLite.
// Call Finalize afterwards.
func (c *Config) OverrideStore(backend, path string) {
	if backend != "" && backend != c.Store.Backend {
		c.Store.Backend = backend
		if path == "" {
			path = DefaultStorePath(backend)
		}
	}
	if path != "" {
		c.Store.Path = path
	}
}

// Validate rejects configurations the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Economy.PricePerMaterial < 0 {
		errs = append(errs, fmt.Errorf("economy.price_per_material must be >= 0, got %v", c.Economy.PricePerMaterial))
	}
	if c.Economy.HireCost < 0 {
		errs = append(errs, fmt.Errorf("economy.hire_cost must be >= 0, got %v", c.Economy.HireCost))
	}
	if c.Economy.DefaultEfficiency < 0 || c.Economy.DefaultEfficiency > 1 {
		errs = append(errs, fmt.Errorf("economy.default_efficiency must be in [0,1], got %v", c.Economy.DefaultEfficiency))
	}
	if c.Economy.WorkPerClick < 0 {
		errs = append(errs, fmt.Errorf("economy.work_per_click must be >= 0, got %v", c.Economy.WorkPerClick))
	}
	if err := c.hireTemplate().Instantiate(0).Validate(); err != nil {
		errs = append(errs, fmt.Errorf("hire: %w", err))
	}
	if c.Sim.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("sim.tick_interval must be positive, got %v", c.Sim.TickInterval))
	}
	if c.Sim.MaxTicks < 0 {
		errs = append(errs, fmt.Errorf("sim.max_ticks must be >= 0, got %d", c.Sim.MaxTicks))
	}
	switch c.Store.Backend {
	case "memory":
	case "file", "sqlite":
		if c.Store.Path == "" {
			errs = append(errs, fmt.Errorf("store.path is required for the %s backend", c.Store.Backend))
		}
	default:
		errs = append(errs, fmt.Errorf("store.backend %q is not one of memory, file, sqlite", c.Store.Backend))
	}
	if c.Telemetry.StatsWindow < 1 {
		errs = append(errs, fmt.Errorf("telemetry.stats_window must be >= 1, got %d", c.Telemetry.StatsWindow))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) hireTemplate() economy.Template {
	return economy.Template{
		WorkPower:  c.Hire.WorkPower,
		Efficiency: c.Hire.Efficiency,
		Support:    c.Hire.Support,
		Wage:       c.Hire.Wage,
	}
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Params = economy.Params{
		PricePerMaterial:  c.Economy.PricePerMaterial,
		HireCost:          c.Economy.HireCost,
		DefaultEfficiency: c.Economy.DefaultEfficiency,
		WorkPerClick:      c.Economy.WorkPerClick,
		Hire:              c.hireTemplate(),
	}
}

// Params returns the economy parameters.
func (c *Config) Params() economy.Params {
	return c.Derived.Params
}

// WriteYAML saves the configuration to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
