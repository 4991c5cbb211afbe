package axelrod

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// entrantFile is the definition file every entrant directory must contain.
const entrantFile = "entrant.json"

// Entrant is a discovered external strategy definition. It holds the entrant
// name, the absolute path to its directory, the parsed configuration and, when
// present, the absolute path to its Dockerfile.
type Entrant struct {
	Name       string        // directory name, used as the competitor name
	Dir        string        // absolute path to the entrant directory
	Dockerfile string        // absolute path to the Dockerfile; empty if absent
	Config     EntrantConfig // parsed from entrant.json
	Timeout    time.Duration // parsed Config.Timeout; zero if unset
}

// EntrantConfig is the content of entrant.json. An entrant runs either a local
// command or a container: Image (or a Dockerfile next to entrant.json) selects
// a container, otherwise Command is started in the entrant directory.
type EntrantConfig struct {
	Author    string            `json:"author"`    // shown in the ranking
	Command   []string          `json:"command"`   // command and arguments; relative paths resolve against the entrant directory
	Image     string            `json:"image"`     // Docker image; defaults to axelrod-<name> when a Dockerfile is present
	BuildArgs map[string]string `json:"buildArgs"` // --build-arg values passed to docker build
	Env       map[string]string `json:"env"`       // environment variables for the process
	Workdir   string            `json:"workdir"`   // working directory; defaults to the entrant directory for local commands
	Timeout   string            `json:"timeout"`   // per-decision timeout, e.g. "2s"
}

// Containerized reports whether the entrant runs in a Docker container.
func (e Entrant) Containerized() bool {
	return e.Config.Image != "" || e.Dockerfile != ""
}

// ImageTag returns the Docker image the entrant runs in.
func (e Entrant) ImageTag() string {
	if e.Config.Image != "" {
		return e.Config.Image
	}
	return "axelrod-" + e.Name
}

// ProcessSpec describes how to launch the entrant's process.
func (e Entrant) ProcessSpec() ProcessSpec {
	spec := ProcessSpec{
		Name:    e.Name,
		Command: append([]string(nil), e.Config.Command...),
		Env:     e.Config.Env,
		Workdir: e.Config.Workdir,
	}
	if e.Containerized() {
		spec.Image = e.ImageTag()
		return spec
	}
	if spec.Workdir == "" {
		spec.Workdir = e.Dir
	}
	if len(spec.Command) > 0 && !filepath.IsAbs(spec.Command[0]) && filepath.Base(spec.Command[0]) != spec.Command[0] {
		spec.Command[0] = filepath.Join(e.Dir, spec.Command[0])
	}
	return spec
}

// DiscoverEntrant loads a single entrant by name from the given entrants
// directory. It returns ErrEntrantNotFound if the directory does not exist,
// and ErrInvalidEntrant if it has no entrant.json or the definition names
// nothing to run. A malformed entrant.json or timeout is an error.
func DiscoverEntrant(entrantsDir, name string) (Entrant, error) {
	dir := filepath.Join(entrantsDir, name)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return Entrant{}, fmt.Errorf("%w: %s", ErrEntrantNotFound, name)
	} else if err != nil {
		return Entrant{}, fmt.Errorf("stat entrant directory: %w", err)
	}

	//nolint:gosec // the path is built from a trusted entrants directory, not user input
	data, err := os.ReadFile(filepath.Join(dir, entrantFile))
	if os.IsNotExist(err) {
		return Entrant{}, fmt.Errorf("%w: %s: %s not found", ErrInvalidEntrant, name, entrantFile)
	} else if err != nil {
		return Entrant{}, fmt.Errorf("read %s: %w", entrantFile, err)
	}

	var config EntrantConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return Entrant{}, fmt.Errorf("parse %s: %w", entrantFile, err)
	}

	var timeout time.Duration
	if config.Timeout != "" {
		timeout, err = time.ParseDuration(config.Timeout)
		if err != nil {
			return Entrant{}, fmt.Errorf("parse %s timeout: %w", entrantFile, err)
		}
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return Entrant{}, fmt.Errorf("resolve entrant directory: %w", err)
	}

	var dockerfile string
	if _, err := os.Stat(filepath.Join(absDir, "Dockerfile")); err == nil {
		dockerfile = filepath.Join(absDir, "Dockerfile")
	}

	e := Entrant{
		Name:       name,
		Dir:        absDir,
		Dockerfile: dockerfile,
		Config:     config,
		Timeout:    timeout,
	}
	if !e.Containerized() && len(config.Command) == 0 {
		return Entrant{}, fmt.Errorf("%w: %s: no command, image or Dockerfile", ErrInvalidEntrant, name)
	}
	return e, nil
}

// DiscoverAll loads all valid entrants from the given entrants directory.
// Entries that are not directories, or directories that are not valid
// entrants, are skipped. The returned slice is sorted by entrant name.
func DiscoverAll(entrantsDir string) ([]Entrant, error) {
	entries, err := os.ReadDir(entrantsDir)
	if err != nil {
		return nil, fmt.Errorf("read entrants directory: %w", err)
	}

	entrants := make([]Entrant, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		e, err := DiscoverEntrant(entrantsDir, entry.Name())
		if err != nil {
			if errors.Is(err, ErrInvalidEntrant) {
				continue
			}
			return nil, err
		}
		entrants = append(entrants, e)
	}

	sort.Slice(entrants, func(i, j int) bool {
		return entrants[i].Name < entrants[j].Name
	})

	return entrants, nil
}
