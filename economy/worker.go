// Package economy implements the company simulation: the worker data model,
// the pure tick stepper and the player actions.
package economy

import "fmt"

// Worker is a hired employee. Workers are never removed once hired.
type Worker struct {
	ID         int64   `json:"id"`
	WorkPower  float64 `json:"workPower"`  // Raw output per tick
	Efficiency float64 `json:"efficiency"` // Share of output sold as material, in [0,1]
	Support    float64 `json:"support"`    // Synergy bonus granted to every other worker
	Wage       float64 `json:"wage"`       // Charged once per tick regardless of output
}

// Validate reports whether the worker's attributes are within range.
func (w Worker) Validate() error {
	switch {
	case w.WorkPower < 0:
		return fmt.Errorf("worker %d: negative work power %v", w.ID, w.WorkPower)
	case w.Efficiency < 0 || w.Efficiency > 1:
		return fmt.Errorf("worker %d: efficiency %v outside [0,1]", w.ID, w.Efficiency)
	case w.Support < 0:
		return fmt.Errorf("worker %d: negative support %v", w.ID, w.Support)
	case w.Wage < 0:
		return fmt.Errorf("worker %d: negative wage %v", w.ID, w.Wage)
	}
	return nil
}

// Template is the set of attributes a freshly hired worker starts with.
type Template struct {
	WorkPower  float64
	Efficiency float64
	Support    float64
	Wage       float64
}

// Instantiate stamps out a worker with the given id.
func (t Template) Instantiate(id int64) Worker {
	return Worker{
		ID:         id,
		WorkPower:  t.WorkPower,
		Efficiency: t.Efficiency,
		Support:    t.Support,
		Wage:       t.Wage,
	}
}
