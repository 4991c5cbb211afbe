package axelrod

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MatchResult records one scored match.
type MatchResult struct {
	ID         string
	A          string
	B          string
	DecisionsA []bool
	DecisionsB []bool
	ScoreA     int
	ScoreB     int
}

// playMatch runs a single match between a and b and emits its closing events.
// The returned result is nil unless both scores were updated.
func (t *Tournament) playMatch(ctx context.Context, a, b *Competitor) (*MatchResult, error) {
	m := &MatchResult{ID: uuid.NewString(), A: a.name, B: b.name}

	ctx, span := t.tracer.Start(ctx, "axelrod.match", trace.WithAttributes(
		attribute.String("axelrod.match_id", m.ID),
		attribute.String("axelrod.a", a.name),
		attribute.String("axelrod.b", b.name),
	))
	defer span.End()

	scored, err := t.runMatch(ctx, m, a, b)
	if scored {
		span.SetAttributes(
			attribute.Int("axelrod.score_a", m.ScoreA),
			attribute.Int("axelrod.score_b", m.ScoreB),
		)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "match failed")

		var round int
		var me *MatchError
		if errors.As(err, &me) {
			round = me.Round
		}
		t.emit(t.event(m, EventMatchFailed, func(e *Event) {
			e.Round = round
			e.Err = err
		}))
	}
	t.emit(t.event(m, EventMatchClosed, nil))

	if !scored {
		return nil, err
	}
	return m, err
}

// runMatch begins both competitors, plays every round, updates scores and
// ends the match. EndMatch runs exactly once for each competitor whose
// BeginMatch succeeded, in reverse order, whatever happens in between.
// Payoffs of an aborted match are discarded.
func (t *Tournament) runMatch(ctx context.Context, m *MatchResult, a, b *Competitor) (scored bool, err error) {
	cleanupCtx := context.WithoutCancel(ctx)

	if err := a.BeginMatch(ctx); err != nil {
		return false, t.matchError(m, 0, fmt.Errorf("begin %s: %w", a.name, err))
	}
	defer func() {
		if endErr := t.endMatch(cleanupCtx, m, a); endErr != nil {
			err = errors.Join(err, endErr)
		}
	}()

	if err := b.BeginMatch(ctx); err != nil {
		return false, t.matchError(m, 0, fmt.Errorf("begin %s: %w", b.name, err))
	}
	defer func() {
		if endErr := t.endMatch(cleanupCtx, m, b); endErr != nil {
			err = errors.Join(err, endErr)
		}
	}()

	t.emit(t.event(m, EventMatchStarted, nil))

	histA := make([]bool, 0, t.rounds)
	histB := make([]bool, 0, t.rounds)
	var totalA, totalB int
	for round := 1; round <= t.rounds; round++ {
		if err := ctx.Err(); err != nil {
			return false, t.matchError(m, round, err)
		}
		// Both decisions see only earlier rounds; A is always asked first.
		dA, err := a.Decide(ctx, histA, histB)
		if err != nil {
			return false, t.matchError(m, round, fmt.Errorf("%s: %w", a.name, err))
		}
		dB, err := b.Decide(ctx, histB, histA)
		if err != nil {
			return false, t.matchError(m, round, fmt.Errorf("%s: %w", b.name, err))
		}

		p := t.payoff.Lookup(dA, dB)
		totalA += p.Own
		totalB += p.Opponent
		histA = append(histA, dA)
		histB = append(histB, dB)

		t.emit(t.event(m, EventRoundPlayed, func(e *Event) {
			e.Round = round
			e.Decisions = [2]bool{dA, dB}
			e.Payoff = p
		}))
	}

	a.UpdateScore(totalA)
	b.UpdateScore(totalB)
	m.DecisionsA = histA
	m.DecisionsB = histB
	m.ScoreA = totalA
	m.ScoreB = totalB

	t.emit(t.event(m, EventMatchScored, func(e *Event) {
		e.Payoff = Payoff{Own: totalA, Opponent: totalB}
	}))
	return true, nil
}

func (t *Tournament) endMatch(ctx context.Context, m *MatchResult, c *Competitor) error {
	if err := c.EndMatch(ctx); err != nil {
		return t.matchError(m, 0, fmt.Errorf("end %s: %w", c.name, err))
	}
	return nil
}

func (t *Tournament) matchError(m *MatchResult, round int, err error) error {
	return &MatchError{
		Err:     err,
		MatchID: m.ID,
		A:       m.A,
		B:       m.B,
		Round:   round,
	}
}

func (t *Tournament) event(m *MatchResult, typ EventType, fill func(*Event)) Event {
	e := Event{
		Time:    time.Now(),
		Type:    typ,
		MatchID: m.ID,
		A:       m.A,
		B:       m.B,
	}
	if fill != nil {
		fill(&e)
	}
	return e
}
