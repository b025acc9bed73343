package economy

import "errors"

// ErrInsufficientFunds is the reason a hire is declined.
var ErrInsufficientFunds = errors.New("insufficient funds to hire")

// DoWork adds one click of manual work to the buffer.
func DoWork(s State, p Params) State {
	next := s.Clone()
	next.WorkBuffer += p.WorkPerClick
	return next
}

// CanHire reports whether the company can afford a hire.
func CanHire(s State, p Params) bool {
	return s.Money >= p.HireCost
}

// Hire charges the hire cost and appends a new worker whose id is drawn
// from nextID. When funds are short it returns s untouched together with
// ErrInsufficientFunds, and nextID is not called.
func Hire(s State, p Params, nextID func() int64) (State, Worker, error) {
	if !CanHire(s, p) {
		return s, Worker{}, ErrInsufficientFunds
	}
	w := p.Hire.Instantiate(nextID())
	next := s.Clone()
	next.Money -= p.HireCost
	next.Workers = append(next.Workers, w)
	return next, w, nil
}
