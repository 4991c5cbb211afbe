package axelrod

import (
	"context"
	"fmt"
)

// Strategy decides a single round. own and opponent hold every earlier
// decision of the match in order and always have the same length; both are
// empty on round one. true means cooperate.
//
// Implementations must not retain or modify the slices.
type Strategy interface {
	Decide(ctx context.Context, own, opponent []bool) (bool, error)
}

// MatchHooks is implemented by strategies that hold a resource for the
// duration of one match. BeginMatch is called once before the first round
// and EndMatch once after the last, including when the match fails.
type MatchHooks interface {
	BeginMatch(ctx context.Context) error
	EndMatch(ctx context.Context) error
}

// Func adapts a pure decision function to Strategy.
type Func func(own, opponent []bool) bool

// Decide calls f.
func (f Func) Decide(_ context.Context, own, opponent []bool) (bool, error) {
	return f(own, opponent), nil
}

// Competitor is a named, authored strategy with an accumulated score.
// Competitors are created by Tournament.AddCompetitor.
type Competitor struct {
	strategy Strategy
	author   string
	name     string
	score    int
}

// NewCompetitor binds strategy to an author and a name.
func NewCompetitor(author, name string, strategy Strategy) *Competitor {
	return &Competitor{
		author:   author,
		name:     name,
		strategy: strategy,
	}
}

// Name returns the competitor's unique name.
func (c *Competitor) Name() string {
	return c.name
}

// Author returns the competitor's author.
func (c *Competitor) Author() string {
	return c.author
}

// Score returns the points accumulated so far.
func (c *Competitor) Score() int {
	return c.score
}

// UpdateScore adds delta to the score.
func (c *Competitor) UpdateScore(delta int) {
	c.score += delta
}

// Decide forwards to the bound strategy. The strategy receives
// capacity-clipped views, so appending to them never reaches the caller's
// backing arrays. A panic inside the strategy is returned as ErrStrategyFailed.
func (c *Competitor) Decide(ctx context.Context, own, opponent []bool) (d bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			d = false
			err = fmt.Errorf("%w: %s: %v", ErrStrategyFailed, c.name, r)
		}
	}()
	return c.strategy.Decide(ctx, own[:len(own):len(own)], opponent[:len(opponent):len(opponent)])
}

// BeginMatch runs the strategy's BeginMatch hook, if it has one.
func (c *Competitor) BeginMatch(ctx context.Context) error {
	if h, ok := c.strategy.(MatchHooks); ok {
		return h.BeginMatch(ctx)
	}
	return nil
}

// EndMatch runs the strategy's EndMatch hook, if it has one.
func (c *Competitor) EndMatch(ctx context.Context) error {
	if h, ok := c.strategy.(MatchHooks); ok {
		return h.EndMatch(ctx)
	}
	return nil
}
