package economy

// State is one consistent snapshot of the company.
type State struct {
	WorkBuffer float64  // Manual work accumulated since the last productive tick
	Money      float64  // May dip negative when wages exceed a tick's gain
	AdminFees  float64  // Permanent overhead record, never spent
	Workers    []Worker // Hire order
}

// Clone returns a deep copy so callers can mutate the result freely.
func (s State) Clone() State {
	out := s
	if s.Workers != nil {
		out.Workers = make([]Worker, len(s.Workers))
		copy(out.Workers, s.Workers)
	}
	return out
}

// Equal reports whether two states hold identical values.
func (s State) Equal(o State) bool {
	if s.WorkBuffer != o.WorkBuffer || s.Money != o.Money || s.AdminFees != o.AdminFees {
		return false
	}
	if len(s.Workers) != len(o.Workers) {
		return false
	}
	for i := range s.Workers {
		if s.Workers[i] != o.Workers[i] {
			return false
		}
	}
	return true
}
