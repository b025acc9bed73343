package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/corpo/store"
)

// stepClock is a manual clock; advance moves it forward.
type stepClock struct{ t time.Time }

func (c *stepClock) now() time.Time          { return c.t }
func (c *stepClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// productiveTick plays the phase sequence of a tick that saves the three
// scalar fields, each write taking writeCost.
func productiveTick(pc *PerfCollector, clk *stepClock, writeCost time.Duration) {
	pc.BeginTick()
	pc.Enter(PhaseSnapshot)
	clk.advance(10 * time.Microsecond)
	pc.Enter(PhaseStep)
	clk.advance(20 * time.Microsecond)
	pc.Enter(PhasePersist)
	for _, key := range []string{store.KeyWorkBuffer, store.KeyMoney, store.KeyAdminFees} {
		clk.advance(writeCost)
		pc.RecordWrite(key, writeCost)
	}
	pc.Enter(PhaseTelemetry)
	clk.advance(10 * time.Microsecond)
	pc.EndTick()
}

func TestPerfCollectorPhaseShares(t *testing.T) {
	clk := &stepClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(10, clk.now)

	for i := 0; i < 4; i++ {
		productiveTick(pc, clk, 20*time.Microsecond)
	}

	s := pc.Stats()
	if s.Ticks != 4 {
		t.Fatalf("ticks = %d, want 4", s.Ticks)
	}
	// 10 + 20 + 3*20 + 10 = 100us per tick
	if s.TickMean != 100*time.Microsecond || s.TickMax != 100*time.Microsecond {
		t.Errorf("tick mean/max = %v/%v, want 100us", s.TickMean, s.TickMax)
	}
	want := map[Phase]float64{PhaseSnapshot: 0.1, PhaseStep: 0.2, PhasePersist: 0.6, PhaseTelemetry: 0.1}
	for ph, share := range want {
		if d := s.PhaseShare[ph] - share; d > 1e-9 || d < -1e-9 {
			t.Errorf("%s share = %v, want %v", ph, s.PhaseShare[ph], share)
		}
	}
}

func TestPerfCollectorWritesByKey(t *testing.T) {
	clk := &stepClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(10, clk.now)

	// A hire between ticks writes workers and money; it lands on the next tick.
	pc.RecordWrite(store.KeyWorkers, 300*time.Microsecond)
	pc.RecordWrite(store.KeyMoney, 40*time.Microsecond)
	productiveTick(pc, clk, 20*time.Microsecond)

	s := pc.Stats()
	if got := s.Writes[store.KeyWorkers]; got.Count != 1 || got.Mean != 300*time.Microsecond {
		t.Errorf("workers writes = %+v", got)
	}
	money := s.Writes[store.KeyMoney]
	if money.Count != 2 || money.Mean != 30*time.Microsecond || money.Max != 40*time.Microsecond {
		t.Errorf("money writes = %+v", money)
	}
	if _, ok := s.Writes["nope"]; ok {
		t.Error("unexpected key")
	}

	row := s.Record(60)
	if row.WindowEnd != 60 || row.WorkersWrites != 1 || row.WorkersWriteUS != 300 || row.MoneyWrites != 2 {
		t.Errorf("record = %+v", row)
	}
	if row.PersistShare <= row.StepShare {
		t.Errorf("persist share %v should exceed step share %v", row.PersistShare, row.StepShare)
	}
}

func TestPerfCollectorWindowRollsOver(t *testing.T) {
	clk := &stepClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(3, clk.now)

	// Three slow ticks, then three fast ones push them out.
	for i := 0; i < 3; i++ {
		productiveTick(pc, clk, time.Millisecond)
	}
	for i := 0; i < 3; i++ {
		productiveTick(pc, clk, 0)
	}

	s := pc.Stats()
	if s.Ticks != 3 {
		t.Errorf("ticks = %d, want window size 3", s.Ticks)
	}
	if s.TickMax != 40*time.Microsecond {
		t.Errorf("max = %v, slow ticks should have rolled out", s.TickMax)
	}
}

func TestPerfCollectorIdleTickHasNoWrites(t *testing.T) {
	clk := &stepClock{t: time.Unix(0, 0)}
	pc := newPerfCollector(5, clk.now)

	pc.BeginTick()
	pc.Enter(PhaseStep)
	clk.advance(5 * time.Microsecond)
	pc.EndTick()

	s := pc.Stats()
	if len(s.Writes) != 0 {
		t.Errorf("idle tick recorded writes: %v", s.Writes)
	}
	if s.PhaseShare[PhaseStep] != 1 {
		t.Errorf("step share = %v, want 1", s.PhaseShare[PhaseStep])
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	pc := NewPerfCollector(0)
	pc.EndTick() // no tick open

	s := pc.Stats()
	if s.Ticks != 0 || s.TickMean != 0 || s.Writes == nil {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestPhaseString(t *testing.T) {
	if PhasePersist.String() != "persist" || Phase(99).String() != "unknown" {
		t.Errorf("got %q / %q", PhasePersist.String(), Phase(99).String())
	}
}
