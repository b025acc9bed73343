package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/corpo/store"
)

// Phase is one stage of a session tick.
type Phase int

const (
	PhaseSnapshot  Phase = iota // copy registry into a State
	PhaseStep                   // pure economy step
	PhasePersist                // store writes
	PhaseTelemetry              // collectors, ledger, window flush
	numPhases
)

var phaseNames = [numPhases]string{"snapshot", "step", "persist", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// tickTiming is what the collector keeps per tick.
type tickTiming struct {
	total  time.Duration
	phases [numPhases]time.Duration
	writes map[string][]time.Duration // store key -> individual write latencies
}

// PerfCollector times tick phases and individual store writes over a
// rolling window of ticks. Writes made by actions between ticks are charged
// to the following tick.
type PerfCollector struct {
	now func() time.Time

	window []tickTiming
	next   int
	filled int

	cur        tickTiming
	inTick     bool
	tickStart  time.Time
	phase      Phase
	phaseStart time.Time
}

// NewPerfCollector creates a collector averaging over windowTicks ticks.
func NewPerfCollector(windowTicks int) *PerfCollector {
	return newPerfCollector(windowTicks, time.Now)
}

func newPerfCollector(windowTicks int, now func() time.Time) *PerfCollector {
	if windowTicks < 1 {
		windowTicks = 60
	}
	return &PerfCollector{
		now:    now,
		window: make([]tickTiming, windowTicks),
		cur:    tickTiming{writes: make(map[string][]time.Duration)},
		phase:  -1,
	}
}

// BeginTick starts timing a tick.
func (p *PerfCollector) BeginTick() {
	p.tickStart = p.now()
	p.inTick = true
	p.phase = -1
}

// Enter closes the running phase, if any, and starts ph.
func (p *PerfCollector) Enter(ph Phase) {
	now := p.now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase >= 0 && p.phase < numPhases {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.phase = -1
}

// RecordWrite records the latency of one store write.
func (p *PerfCollector) RecordWrite(key string, d time.Duration) {
	p.cur.writes[key] = append(p.cur.writes[key], d)
}

// EndTick closes the tick and pushes it into the window.
func (p *PerfCollector) EndTick() {
	if !p.inTick {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.cur.total = now.Sub(p.tickStart)
	p.inTick = false

	p.window[p.next] = p.cur
	p.next = (p.next + 1) % len(p.window)
	p.filled = min(p.filled+1, len(p.window))
	p.cur = tickTiming{writes: make(map[string][]time.Duration)}
}

// WriteStats summarizes the writes of one store key.
type WriteStats struct {
	Count int
	Mean  time.Duration
	Max   time.Duration
}

// PerfStats summarizes the window.
type PerfStats struct {
	Ticks int

	TickMean time.Duration
	TickP50  time.Duration
	TickP90  time.Duration
	TickMax  time.Duration

	// Share of total tick time spent in each phase, in [0, 1].
	PhaseShare [numPhases]float64

	Writes map[string]WriteStats
}

// Stats aggregates the ticks currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	out := PerfStats{Ticks: p.filled, Writes: make(map[string]WriteStats)}
	if p.filled == 0 {
		return out
	}

	totals := make([]float64, p.filled)
	var phaseSum [numPhases]float64
	var tickSum float64
	byKey := make(map[string][]float64)

	for i, t := range p.window[:p.filled] {
		totals[i] = float64(t.total)
		tickSum += float64(t.total)
		for ph, d := range t.phases {
			phaseSum[ph] += float64(d)
		}
		for key, ds := range t.writes {
			for _, d := range ds {
				byKey[key] = append(byKey[key], float64(d))
			}
		}
	}

	sort.Float64s(totals)
	out.TickMean = time.Duration(stat.Mean(totals, nil))
	out.TickP50 = time.Duration(stat.Quantile(0.5, stat.LinInterp, totals, nil))
	out.TickP90 = time.Duration(stat.Quantile(0.9, stat.LinInterp, totals, nil))
	out.TickMax = time.Duration(totals[len(totals)-1])

	if tickSum > 0 {
		for ph := range phaseSum {
			out.PhaseShare[ph] = phaseSum[ph] / tickSum
		}
	}

	for key, ds := range byKey {
		sort.Float64s(ds)
		out.Writes[key] = WriteStats{
			Count: len(ds),
			Mean:  time.Duration(stat.Mean(ds, nil)),
			Max:   time.Duration(ds[len(ds)-1]),
		}
	}
	return out
}

// LogStats logs the window summary.
func (s PerfStats) LogStats(log *slog.Logger) {
	log.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("tick_mean_us", s.TickMean.Microseconds()),
		slog.Int64("tick_p90_us", s.TickP90.Microseconds()),
		slog.Int64("tick_max_us", s.TickMax.Microseconds()),
	}
	for ph := Phase(0); ph < numPhases; ph++ {
		attrs = append(attrs, slog.Float64(ph.String()+"_share", s.PhaseShare[ph]))
	}
	keys := make([]string, 0, len(s.Writes))
	for k := range s.Writes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		w := s.Writes[k]
		attrs = append(attrs, slog.Group("write_"+k,
			slog.Int("count", w.Count),
			slog.Int64("mean_us", w.Mean.Microseconds()),
			slog.Int64("max_us", w.Max.Microseconds()),
		))
	}
	return slog.GroupValue(attrs...)
}

// PerfRecord is one perf.csv row.
type PerfRecord struct {
	WindowEnd int64 `csv:"window_end"`
	Ticks     int   `csv:"ticks"`

	TickMeanUS int64 `csv:"tick_mean_us"`
	TickP50US  int64 `csv:"tick_p50_us"`
	TickP90US  int64 `csv:"tick_p90_us"`
	TickMaxUS  int64 `csv:"tick_max_us"`

	SnapshotShare  float64 `csv:"snapshot_share"`
	StepShare      float64 `csv:"step_share"`
	PersistShare   float64 `csv:"persist_share"`
	TelemetryShare float64 `csv:"telemetry_share"`

	WorkBufferWrites  int   `csv:"work_buffer_writes"`
	WorkBufferWriteUS int64 `csv:"work_buffer_write_us"`
	MoneyWrites       int   `csv:"money_writes"`
	MoneyWriteUS      int64 `csv:"money_write_us"`
	AdminFeesWrites   int   `csv:"admin_fees_writes"`
	AdminFeesWriteUS  int64 `csv:"admin_fees_write_us"`
	WorkersWrites     int   `csv:"workers_writes"`
	WorkersWriteUS    int64 `csv:"workers_write_us"`
}

// Record flattens the stats into a perf.csv row.
func (s PerfStats) Record(windowEnd int64) PerfRecord {
	wb := s.Writes[store.KeyWorkBuffer]
	m := s.Writes[store.KeyMoney]
	af := s.Writes[store.KeyAdminFees]
	w := s.Writes[store.KeyWorkers]
	return PerfRecord{
		WindowEnd:         windowEnd,
		Ticks:             s.Ticks,
		TickMeanUS:        s.TickMean.Microseconds(),
		TickP50US:         s.TickP50.Microseconds(),
		TickP90US:         s.TickP90.Microseconds(),
		TickMaxUS:         s.TickMax.Microseconds(),
		SnapshotShare:     s.PhaseShare[PhaseSnapshot],
		StepShare:         s.PhaseShare[PhaseStep],
		PersistShare:      s.PhaseShare[PhasePersist],
		TelemetryShare:    s.PhaseShare[PhaseTelemetry],
		WorkBufferWrites:  wb.Count,
		WorkBufferWriteUS: wb.Mean.Microseconds(),
		MoneyWrites:       m.Count,
		MoneyWriteUS:      m.Mean.Microseconds(),
		AdminFeesWrites:   af.Count,
		AdminFeesWriteUS:  af.Mean.Microseconds(),
		WorkersWrites:     w.Count,
		WorkersWriteUS:    w.Mean.Microseconds(),
	}
}
