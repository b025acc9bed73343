package economy

import (
	"errors"
	"testing"
)

func TestDoWork(t *testing.T) {
	p := DefaultParams()
	s := State{WorkBuffer: 2, Money: 1}

	next := DoWork(s, p)

	if next.WorkBuffer != 3 {
		t.Errorf("work buffer = %v, want 3", next.WorkBuffer)
	}
	if next.Money != 1 {
		t.Errorf("money changed to %v", next.Money)
	}
	if s.WorkBuffer != 2 {
		t.Errorf("input mutated: work buffer = %v", s.WorkBuffer)
	}
}

func TestHire(t *testing.T) {
	tests := []struct {
		name    string
		money   float64
		wantOK  bool
		wantPay float64
	}{
		{"exact funds", 10, true, 0},
		{"surplus", 25, true, 15},
		{"one cent short", 9.99, false, 9.99},
		{"broke", 0, false, 0},
		{"negative", -0.4, false, -0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			seq := NewSequence(nil)
			calls := 0
			nextID := func() int64 {
				calls++
				return seq.NextID()
			}
			s := State{Money: tt.money, WorkBuffer: 1.5, AdminFees: 3}
			before := s.Clone()

			next, w, err := Hire(s, p, nextID)

			if tt.wantOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(next.Workers) != 1 {
					t.Fatalf("workers = %d, want 1", len(next.Workers))
				}
				if next.Workers[0] != w {
					t.Errorf("appended worker %+v, returned %+v", next.Workers[0], w)
				}
				want := Worker{ID: 1, WorkPower: 1, Efficiency: 0.6, Support: 0.1, Wage: 0.2}
				if w != want {
					t.Errorf("worker = %+v, want %+v", w, want)
				}
			} else {
				if !errors.Is(err, ErrInsufficientFunds) {
					t.Fatalf("err = %v, want ErrInsufficientFunds", err)
				}
				if !next.Equal(before) {
					t.Errorf("declined hire changed state: %+v", next)
				}
				if calls != 0 {
					t.Errorf("declined hire consumed %d ids", calls)
				}
			}
			if next.Money != tt.wantPay {
				t.Errorf("money = %v, want %v", next.Money, tt.wantPay)
			}
			if !s.Equal(before) {
				t.Errorf("input mutated: %+v", s)
			}
		})
	}
}

func TestHireRapidIDsAreDistinct(t *testing.T) {
	p := DefaultParams()
	seq := NewSequence(nil)
	s := State{Money: 10 * 500}

	for i := 0; i < 500; i++ {
		var err error
		s, _, err = Hire(s, p, seq.NextID)
		if err != nil {
			t.Fatalf("hire %d: %v", i, err)
		}
	}

	seen := make(map[int64]bool, len(s.Workers))
	for _, w := range s.Workers {
		if seen[w.ID] {
			t.Fatalf("duplicate id %d", w.ID)
		}
		seen[w.ID] = true
	}
	if s.Money != 0 {
		t.Errorf("money = %v, want 0", s.Money)
	}
}

func TestSequenceResumesAfterHighestID(t *testing.T) {
	seq := NewSequence([]Worker{{ID: 4}, {ID: 17}, {ID: 2}})

	if got := seq.NextID(); got != 18 {
		t.Errorf("NextID = %d, want 18", got)
	}
	seq.Observe(5)
	if got := seq.NextID(); got != 19 {
		t.Errorf("NextID after observing lower id = %d, want 19", got)
	}

	var zero Sequence
	if got := zero.NextID(); got != 1 {
		t.Errorf("zero sequence NextID = %d, want 1", got)
	}
}

func TestWorkerValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       Worker
		wantErr bool
	}{
		{"default", DefaultParams().Hire.Instantiate(1), false},
		{"negative power", Worker{WorkPower: -1, Efficiency: 0.5}, true},
		{"efficiency above one", Worker{Efficiency: 1.2}, true},
		{"negative support", Worker{Efficiency: 0.5, Support: -0.1}, true},
		{"negative wage", Worker{Efficiency: 0.5, Wage: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
