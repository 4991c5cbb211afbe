package axelrod

import "fmt"

// Payoff is the pair of points awarded for one round, from the point of view
// of the competitor whose decision comes first.
type Payoff struct {
	Own      int
	Opponent int
}

// reverse returns the payoff seen from the other side of the table.
func (p Payoff) reverse() Payoff {
	return Payoff{Own: p.Opponent, Opponent: p.Own}
}

// PayoffTable maps the four (own, opponent) decision combinations to points.
// The first letter of each field is the own decision, the second the
// opponent's: C is cooperate, D is defect.
type PayoffTable struct {
	CC Payoff
	CD Payoff
	DC Payoff
	DD Payoff
}

// DefaultPayoffTable is the canonical Axelrod table.
var DefaultPayoffTable = NewPayoffTable(3, 0, 5, 1)

// NewPayoffTable builds a table from the four classic Prisoner's Dilemma
// values. A table built this way is always symmetric.
func NewPayoffTable(reward, sucker, temptation, punishment int) PayoffTable {
	return PayoffTable{
		CC: Payoff{Own: reward, Opponent: reward},
		CD: Payoff{Own: sucker, Opponent: temptation},
		DC: Payoff{Own: temptation, Opponent: sucker},
		DD: Payoff{Own: punishment, Opponent: punishment},
	}
}

// Lookup returns the payoff for one round given both decisions.
func (p PayoffTable) Lookup(own, opponent bool) Payoff {
	switch {
	case own && opponent:
		return p.CC
	case own && !opponent:
		return p.CD
	case !own && opponent:
		return p.DC
	default:
		return p.DD
	}
}

// Validate reports ErrAsymmetricPayoff if swapping roles changes the outcome
// of any decision combination.
func (p PayoffTable) Validate() error {
	for _, own := range []bool{true, false} {
		for _, opponent := range []bool{true, false} {
			got := p.Lookup(own, opponent)
			want := p.Lookup(opponent, own).reverse()
			if got != want {
				return fmt.Errorf("%w: (%s,%s) is %v, swapped is %v",
					ErrAsymmetricPayoff, decisionName(own), decisionName(opponent), got, want)
			}
		}
	}
	return nil
}

func decisionName(d bool) string {
	if d {
		return "cooperate"
	}
	return "defect"
}
