// Package main provides CMA-ES tuning of the economy's balance parameters.
package main

import (
	"github.com/pthm-cable/corpo/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// default_efficiency and work_per_click stay fixed; they shape the
// pre-hire game only.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Economy
			{Name: "price_per_material", Path: "economy.price_per_material", Min: 0.25, Max: 4.0, Default: 1.0},
			{Name: "hire_cost", Path: "economy.hire_cost", Min: 2.0, Max: 100.0, Default: 10.0},
			// Hire template
			{Name: "hire_work_power", Path: "hire.work_power", Min: 0.25, Max: 4.0, Default: 1.0},
			{Name: "hire_efficiency", Path: "hire.efficiency", Min: 0.1, Max: 1.0, Default: 0.6},
			{Name: "hire_support", Path: "hire.support", Min: 0.0, Max: 0.5, Default: 0.1},
			{Name: "hire_wage", Path: "hire.wage", Min: 0.0, Max: 2.0, Default: 0.2},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct and refreshes
// its derived economy parameters.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)

	// Order must match Specs order
	cfg.Economy.PricePerMaterial = clamped[0]
	cfg.Economy.HireCost = clamped[1]
	cfg.Hire.WorkPower = clamped[2]
	cfg.Hire.Efficiency = clamped[3]
	cfg.Hire.Support = clamped[4]
	cfg.Hire.Wage = clamped[5]

	return cfg.Finalize()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Economy.PricePerMaterial,
		cfg.Economy.HireCost,
		cfg.Hire.WorkPower,
		cfg.Hire.Efficiency,
		cfg.Hire.Support,
		cfg.Hire.Wage,
	}
}
