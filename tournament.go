package axelrod

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultRounds is the number of rounds per match when WithRounds is not given.
const DefaultRounds = 200

const tracerName = "github.com/zoobzio/axelrod"

// Tournament is a round-robin competition between registered competitors.
// Use New to create one. A Tournament is not safe for concurrent use.
type Tournament struct {
	tracer      trace.Tracer
	competitors map[string]*Competitor
	observer    func(Event)
	order       []*Competitor
	matches     []MatchResult
	payoff      PayoffTable
	rounds      int
	failSoft    bool
}

// Option configures a Tournament.
type Option func(*Tournament)

// WithRounds sets the number of rounds played in every match.
func WithRounds(n int) Option {
	return func(t *Tournament) { t.rounds = n }
}

// WithPayoffTable replaces DefaultPayoffTable.
func WithPayoffTable(p PayoffTable) Option {
	return func(t *Tournament) { t.payoff = p }
}

// WithFailSoft makes Run skip a failing pair and continue with the rest.
// Without it, the first failing match stops the run.
func WithFailSoft() Option {
	return func(t *Tournament) { t.failSoft = true }
}

// WithObserver installs a function that receives every match event.
func WithObserver(fn func(Event)) Option {
	return func(t *Tournament) { t.observer = fn }
}

// New returns an empty Tournament. It returns ErrInvalidRounds for a
// non-positive round count and ErrAsymmetricPayoff for an asymmetric table.
func New(opts ...Option) (*Tournament, error) {
	t := &Tournament{
		competitors: make(map[string]*Competitor),
		payoff:      DefaultPayoffTable,
		rounds:      DefaultRounds,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.rounds <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRounds, t.rounds)
	}
	if err := t.payoff.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Rounds returns the number of rounds per match.
func (t *Tournament) Rounds() int {
	return t.rounds
}

// AddCompetitor registers strategy under name. A duplicate name is rejected
// with ErrDuplicateName and leaves the registered competitor untouched.
func (t *Tournament) AddCompetitor(author, name string, strategy Strategy) (*Competitor, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if strategy == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilStrategy, name)
	}
	if _, ok := t.competitors[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	c := NewCompetitor(author, name, strategy)
	t.competitors[name] = c
	t.order = append(t.order, c)
	return c, nil
}

// Competitor returns the competitor registered under name.
func (t *Tournament) Competitor(name string) (*Competitor, bool) {
	c, ok := t.competitors[name]
	return c, ok
}

// Len returns the number of registered competitors.
func (t *Tournament) Len() int {
	return len(t.order)
}

// Run plays one match for every unordered pair of distinct competitors.
// Pairs are visited in registration order: the competitor registered first
// plays as A.
//
// Failed matches are reported as *MatchError. By default the first failure
// stops the run; scores from matches already played are kept. With
// WithFailSoft every pair is attempted and the failures are joined.
func (t *Tournament) Run(ctx context.Context) error {
	ctx, span := t.tracer.Start(ctx, "axelrod.round_robin", trace.WithAttributes(
		attribute.Int("axelrod.competitors", len(t.order)),
		attribute.Int("axelrod.rounds", t.rounds),
	))
	defer span.End()

	var errs []error
	for i := 0; i < len(t.order); i++ {
		for j := i + 1; j < len(t.order); j++ {
			if err := ctx.Err(); err != nil {
				errs = append(errs, err)
				return t.finish(span, errs)
			}
			res, err := t.playMatch(ctx, t.order[i], t.order[j])
			if res != nil {
				t.matches = append(t.matches, *res)
			}
			if err != nil {
				errs = append(errs, err)
				if !t.failSoft {
					return t.finish(span, errs)
				}
			}
		}
	}
	return t.finish(span, errs)
}

func (t *Tournament) finish(span trace.Span, errs []error) error {
	err := errors.Join(errs...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "round robin failed")
	}
	return err
}

// Standing is one row of the final ranking.
type Standing struct {
	Name   string
	Author string
	Rank   int
	Score  int
}

// Ranking returns every competitor ordered by score, highest first.
// Equal scores keep registration order. Rank is 1-based and positional.
func (t *Tournament) Ranking() []Standing {
	sorted := make([]*Competitor, len(t.order))
	copy(sorted, t.order)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].score > sorted[j].score
	})

	standings := make([]Standing, len(sorted))
	for i, c := range sorted {
		standings[i] = Standing{
			Rank:   i + 1,
			Name:   c.name,
			Author: c.author,
			Score:  c.score,
		}
	}
	return standings
}

// Matches returns the record of every scored match in play order.
func (t *Tournament) Matches() []MatchResult {
	out := make([]MatchResult, len(t.matches))
	copy(out, t.matches)
	return out
}

func (t *Tournament) emit(e Event) {
	if t.observer != nil {
		t.observer(e)
	}
}
