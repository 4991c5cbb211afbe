package axelrod

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DefaultDecideTimeout bounds a single external decision when no timeout
// is configured.
const DefaultDecideTimeout = 5 * time.Second

// ProcessStrategy is a Strategy backed by an external process. A new process
// is started for every match and killed when the match ends, so processes may
// keep state between rounds but never between matches.
type ProcessStrategy struct {
	runner  Runner
	sess    *session
	spec    ProcessSpec
	timeout time.Duration
	mu      sync.Mutex
}

// NewProcessStrategy returns a strategy that runs spec through runner.
// A timeout of zero or less disables the per-decision timeout.
func NewProcessStrategy(runner Runner, spec ProcessSpec, timeout time.Duration) *ProcessStrategy {
	return &ProcessStrategy{
		runner:  runner,
		spec:    spec,
		timeout: timeout,
	}
}

// BeginMatch starts the external process. It returns ErrMatchInProgress if a
// process from an earlier match is still attached.
func (p *ProcessStrategy) BeginMatch(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess != nil {
		return fmt.Errorf("%w: %s (session %s)", ErrMatchInProgress, p.spec.Name, p.sess.ID())
	}
	proc, err := p.runner.Start(ctx, p.spec)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProtocol, err)
	}
	p.sess = newSession(proc, p.timeout)
	return nil
}

// Decide sends both histories to the process and decodes its reply.
func (p *ProcessStrategy) Decide(ctx context.Context, own, opponent []bool) (bool, error) {
	p.mu.Lock()
	sess := p.sess
	p.mu.Unlock()
	if sess == nil {
		return false, fmt.Errorf("%w: %s: no process attached", ErrProtocol, p.spec.Name)
	}

	reply, err := sess.roundTrip(ctx, EncodeRequest(own, opponent))
	if err != nil {
		return false, err
	}
	return DecodeResponse(reply)
}

// EndMatch kills the external process, whether or not the match succeeded.
// Calling it without an attached process is a no-op.
func (p *ProcessStrategy) EndMatch(_ context.Context) error {
	p.mu.Lock()
	sess := p.sess
	p.sess = nil
	p.mu.Unlock()
	if sess == nil {
		return nil
	}
	if err := sess.Stop(); err != nil {
		return fmt.Errorf("stop %s: %w", p.spec.Name, err)
	}
	return nil
}
