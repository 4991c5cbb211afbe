package axelrod

import (
	"errors"
	"fmt"
)

// ErrDuplicateName is returned when a competitor is registered under a name
// that is already present in the tournament.
var ErrDuplicateName = errors.New("competitor name already registered")

// ErrInvalidName is returned when a competitor is registered with an empty name.
var ErrInvalidName = errors.New("competitor name is required")

// ErrNilStrategy is returned when a competitor is registered without a strategy.
var ErrNilStrategy = errors.New("competitor strategy is required")

// ErrInvalidRounds is returned when a tournament is configured with a
// non-positive round count.
var ErrInvalidRounds = errors.New("round count must be positive")

// ErrAsymmetricPayoff is returned when a payoff table is not symmetric under
// role swap.
var ErrAsymmetricPayoff = errors.New("payoff table is not symmetric")

// ErrProtocol is returned when an external decision process replies with
// something other than a valid decision, stops responding, or exits.
var ErrProtocol = errors.New("strategy protocol violation")

// ErrStrategyFailed is returned when an in-process strategy panics.
var ErrStrategyFailed = errors.New("strategy failed")

// ErrMatchInProgress is returned when a process-backed strategy is asked to
// begin a match while a previous one is still attached.
var ErrMatchInProgress = errors.New("strategy already in a match")

// ErrEntrantNotFound is returned when an entrant directory does not exist.
var ErrEntrantNotFound = errors.New("entrant not found")

// ErrInvalidEntrant is returned when an entrant directory exists but contains
// no entrant.json, or entrant.json names nothing to run.
var ErrInvalidEntrant = errors.New("invalid entrant")

// ErrBuildFailed is returned when the Docker image build exits with a non-zero status.
var ErrBuildFailed = errors.New("image build failed")

// ErrDockerUnavailable is returned when the Docker daemon cannot be reached.
var ErrDockerUnavailable = errors.New("docker is not available")

// MatchError reports a failed match. Round is the 1-based round whose
// decision failed, or 0 when the failure happened while the match was being
// set up or torn down.
type MatchError struct {
	Err     error
	MatchID string
	A       string
	B       string
	Round   int
}

func (e *MatchError) Error() string {
	if e.Round > 0 {
		return fmt.Sprintf("match %s vs %s: round %d: %v", e.A, e.B, e.Round, e.Err)
	}
	return fmt.Sprintf("match %s vs %s: %v", e.A, e.B, e.Err)
}

func (e *MatchError) Unwrap() error {
	return e.Err
}
