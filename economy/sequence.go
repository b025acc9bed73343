package economy

// Sequence hands out monotonically increasing worker ids.
// The zero value starts at 1.
type Sequence struct {
	next int64
}

// NewSequence returns a sequence that resumes after the highest id in workers.
func NewSequence(workers []Worker) *Sequence {
	s := &Sequence{next: 1}
	for _, w := range workers {
		s.Observe(w.ID)
	}
	return s
}

// Observe makes sure id is never handed out again.
func (s *Sequence) Observe(id int64) {
	if s.next < 1 {
		s.next = 1
	}
	if id >= s.next {
		s.next = id + 1
	}
}

// NextID returns a fresh id.
func (s *Sequence) NextID() int64 {
	if s.next < 1 {
		s.next = 1
	}
	id := s.next
	s.next++
	return id
}
