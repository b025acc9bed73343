package economy

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Report describes what one tick computed. For an idle tick only the
// aggregation fields are filled.
type Report struct {
	Idle          bool
	TotalSupport  float64
	Contributions []float64 // Per worker, same order as State.Workers
	TotalWork     float64
	AvgEfficiency float64
	Materials     float64
	Overhead      float64
	MoneyGain     float64
	WageBill      float64
}

// Contributions returns each worker's output for one tick. A worker
// benefits from everyone else's support but not its own.
func Contributions(workers []Worker) (contribs []float64, totalSupport float64) {
	supports := make([]float64, len(workers))
	for i, w := range workers {
		supports[i] = w.Support
	}
	totalSupport = floats.Sum(supports)

	contribs = make([]float64, len(workers))
	for i, w := range workers {
		contribs[i] = w.WorkPower * (1 + (totalSupport - w.Support))
	}
	return contribs, totalSupport
}

// AverageEfficiency is the mean efficiency of the workforce, or fallback
// when there is no workforce.
func AverageEfficiency(workers []Worker, fallback float64) float64 {
	if len(workers) == 0 {
		return fallback
	}
	effs := make([]float64, len(workers))
	for i, w := range workers {
		effs[i] = w.Efficiency
	}
	return stat.Mean(effs, nil)
}

// WageBill is the total payroll charged per tick.
func WageBill(workers []Worker) float64 {
	wages := make([]float64, len(workers))
	for i, w := range workers {
		wages[i] = w.Wage
	}
	return floats.Sum(wages)
}

// Step advances the economy by one tick. It never mutates s and never
// fails. When total work is not positive the returned state equals s.
func Step(s State, p Params) (State, Report) {
	contribs, totalSupport := Contributions(s.Workers)
	rep := Report{
		TotalSupport:  totalSupport,
		Contributions: contribs,
		TotalWork:     s.WorkBuffer + floats.Sum(contribs),
	}

	next := s.Clone()
	if rep.TotalWork <= 0 {
		rep.Idle = true
		return next, rep
	}

	rep.AvgEfficiency = AverageEfficiency(s.Workers, p.DefaultEfficiency)
	rep.Materials = rep.TotalWork * rep.AvgEfficiency
	rep.Overhead = rep.TotalWork * (1 - rep.AvgEfficiency)
	rep.MoneyGain = rep.Materials * p.PricePerMaterial

	next.Money = Round2(next.Money + rep.MoneyGain)
	next.AdminFees = Round2(next.AdminFees + rep.Overhead)

	rep.WageBill = WageBill(s.Workers)
	next.Money = Round2(next.Money - rep.WageBill)

	next.WorkBuffer = 0
	return next, rep
}
