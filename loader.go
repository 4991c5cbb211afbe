package axelrod

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ContainerRunner is a Runner that can also build images.
// DockerRunner is the production implementation.
type ContainerRunner interface {
	Runner
	Build(ctx context.Context, tag string, dir string, buildArgs map[string]string) error
}

// Loader registers entrants from an entrants directory into a tournament as
// process-backed competitors. Use NewLoader to create one.
type Loader struct {
	local       Runner
	containers  ContainerRunner
	entrantsDir string
	timeout     time.Duration
	preflighted bool
}

// NewLoader returns a Loader that discovers entrants in entrantsDir, starts
// local commands via local and containers via containers. timeout is the
// per-decision timeout for entrants that do not set their own.
func NewLoader(entrantsDir string, local Runner, containers ContainerRunner, timeout time.Duration) *Loader {
	return &Loader{
		entrantsDir: entrantsDir,
		local:       local,
		containers:  containers,
		timeout:     timeout,
	}
}

// DefaultEntrantsDir returns the conventional entrants directory: ~/.axelrod/entrants/.
func DefaultEntrantsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".axelrod", "entrants"), nil
}

// Load discovers the named entrant and registers it with t.
func (l *Loader) Load(ctx context.Context, t *Tournament, name string) (Entrant, error) {
	e, err := DiscoverEntrant(l.entrantsDir, name)
	if err != nil {
		return Entrant{}, err
	}
	if err := l.Register(ctx, t, e); err != nil {
		return Entrant{}, err
	}
	return e, nil
}

// LoadAll registers every valid entrant in the entrants directory, in name
// order, and returns them.
func (l *Loader) LoadAll(ctx context.Context, t *Tournament) ([]Entrant, error) {
	entrants, err := DiscoverAll(l.entrantsDir)
	if err != nil {
		return nil, err
	}
	for _, e := range entrants {
		if err := l.Register(ctx, t, e); err != nil {
			return nil, err
		}
	}
	return entrants, nil
}

// Register adds e to t. An entrant with a Dockerfile and no explicit image has
// its image built first.
func (l *Loader) Register(ctx context.Context, t *Tournament, e Entrant) error {
	runner := l.local
	if e.Containerized() {
		if l.containers == nil {
			return fmt.Errorf("%w: %s needs docker", ErrDockerUnavailable, e.Name)
		}
		if err := l.preflight(ctx); err != nil {
			return err
		}
		if e.Config.Image == "" && e.Dockerfile != "" {
			if err := l.containers.Build(ctx, e.ImageTag(), e.Dir, e.Config.BuildArgs); err != nil {
				return fmt.Errorf("entrant %s: %w", e.Name, err)
			}
		}
		runner = l.containers
	}
	if runner == nil {
		return fmt.Errorf("entrant %s: no runner for local commands", e.Name)
	}

	timeout := e.Timeout
	if timeout == 0 {
		timeout = l.timeout
	}

	strategy := NewProcessStrategy(runner, e.ProcessSpec(), timeout)
	if _, err := t.AddCompetitor(e.Config.Author, e.Name, strategy); err != nil {
		return err
	}
	return nil
}

// preflight runs the container runner's Preflight check once, if it has one.
func (l *Loader) preflight(ctx context.Context) error {
	if l.preflighted {
		return nil
	}
	if p, ok := l.containers.(interface{ Preflight(context.Context) error }); ok {
		if err := p.Preflight(ctx); err != nil {
			return err
		}
	}
	l.preflighted = true
	return nil
}
