package axelrod

import "time"

// EventType identifies the kind of event emitted during a tournament run.
type EventType int

const (
	// EventMatchStarted is emitted once both competitors have begun the match.
	EventMatchStarted EventType = iota

	// EventRoundPlayed is emitted after each round.
	// Round, Decisions and Payoff describe the round.
	EventRoundPlayed

	// EventMatchScored is emitted after both scores have been updated.
	// Payoff holds the match totals.
	EventMatchScored

	// EventMatchFailed is emitted when a match is aborted.
	// Err holds the MatchError; Round is the failing round or 0.
	EventMatchFailed

	// EventMatchClosed is emitted after EndMatch has run for every competitor
	// that began the match.
	EventMatchClosed
)

// String returns a short lowercase name for the event type.
func (t EventType) String() string {
	switch t {
	case EventMatchStarted:
		return "match_started"
	case EventRoundPlayed:
		return "round_played"
	case EventMatchScored:
		return "match_scored"
	case EventMatchFailed:
		return "match_failed"
	case EventMatchClosed:
		return "match_closed"
	default:
		return "unknown"
	}
}

// Event is a match lifecycle event, delivered synchronously to the observer
// installed with WithObserver.
//
// Ordering guarantees per match:
//   - Completed:     MatchStarted → RoundPlayed* → MatchScored → MatchClosed
//   - Round failure: MatchStarted → RoundPlayed* → MatchFailed → MatchClosed
//   - Begin failure: MatchFailed → MatchClosed
type Event struct {
	Time      time.Time
	Err       error
	MatchID   string
	A         string
	B         string
	Payoff    Payoff
	Type      EventType
	Round     int
	Decisions [2]bool
}
