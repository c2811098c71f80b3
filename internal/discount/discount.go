package discount

import (
	"math/rand/v2"
)

// Source produces die rolls. It exists so tests can drive the tier table
// deterministically; randomness stays confined to the roll itself.
type Source interface {
	Roll() int
}

type dieSource struct{}

func (dieSource) Roll() int { return rand.IntN(6) + 1 }

// PercentFor maps a die roll to its discount percentage. The table is
// exhaustive over [1,6]; anything outside earns nothing.
func PercentFor(roll int) int {
	switch roll {
	case 1, 2:
		return 10
	case 3, 4:
		return 14
	case 5, 6:
		return 18
	default:
		return 0
	}
}

// State is the session's discount standing. It is volatile: never persisted,
// reset only when the session goes away. Checkout does not touch it.
type State struct {
	Percent   int  `json:"percent"`
	LastRoll  int  `json:"lastRoll,omitempty"`
	HasPlayed bool `json:"hasPlayed"`
}

// Quote is a priced cart total with the discount broken out for display.
type Quote struct {
	Subtotal       int64 `json:"subtotal"`
	Percent        int   `json:"discountPercent"`
	DiscountAmount int64 `json:"discountAmount"`
	Payable        int64 `json:"payable"`
}

// Roller owns one session's discount state.
type Roller struct {
	source Source
	state  State
}

// NewRoller builds a roller; a nil source means a fair six-sided die.
func NewRoller(source Source) *Roller {
	if source == nil {
		source = dieSource{}
	}
	return &Roller{source: source}
}

// Roll draws the die and locks in the mapped percentage. Re-rolling after
// HasPlayed is deliberately allowed; gating a single play per session is the
// UI's concern.
func (r *Roller) Roll() (roll, percent int) {
	roll = r.source.Roll()
	percent = PercentFor(roll)

	r.state = State{Percent: percent, LastRoll: roll, HasPlayed: true}
	return roll, percent
}

func (r *Roller) State() State {
	return r.state
}

// Apply prices a subtotal under the current discount. The tier table keeps
// the percentage inside [0,100], so the payable amount is never negative;
// the clamp below guards externally restored state.
func (r *Roller) Apply(subtotal int64) Quote {
	pct := r.state.Percent
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	amount := subtotal * int64(pct) / 100
	return Quote{
		Subtotal:       subtotal,
		Percent:        pct,
		DiscountAmount: amount,
		Payable:        subtotal - amount,
	}
}
