package axelrod

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// dockerKillTimeout bounds the docker kill issued when a container-backed
// process is terminated.
const dockerKillTimeout = 10 * time.Second

// DockerRunner implements Runner using the Docker CLI via os/exec. Each
// process is a fresh `docker run -i --rm` container attached to the
// runner's standard streams.
type DockerRunner struct{}

// Preflight checks that the Docker daemon is reachable by running docker info.
// Returns ErrDockerUnavailable if the daemon cannot be contacted.
func (d *DockerRunner) Preflight(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "docker", "info")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %w", ErrDockerUnavailable, err)
	}
	return nil
}

// buildCmdArgs returns the docker CLI arguments for a build invocation.
func buildCmdArgs(tag string, dir string, buildArgs map[string]string) []string {
	args := []string{"build", "-t", tag}
	for _, kv := range sortedEnv(buildArgs) {
		args = append(args, "--build-arg", kv)
	}
	args = append(args, dir)
	return args
}

// runCmdArgs returns the docker CLI arguments for an interactive run of spec
// in a container called name.
func runCmdArgs(name string, spec ProcessSpec) []string {
	args := []string{"run", "-i", "--rm"}
	if name != "" {
		args = append(args, "--name", name)
	}
	for _, kv := range sortedEnv(spec.Env) {
		args = append(args, "-e", kv)
	}
	if spec.Workdir != "" {
		args = append(args, "-w", spec.Workdir)
	}
	args = append(args, spec.Image)
	args = append(args, spec.Command...)
	return args
}

// containerName returns a container name unique to one match.
func containerName(entrant string) string {
	return "axelrod-" + entrant + "-" + uuid.NewString()[:8]
}

// Build builds a Docker image tagged with tag from the Dockerfile in dir.
func (d *DockerRunner) Build(ctx context.Context, tag string, dir string, buildArgs map[string]string) error {
	args := buildCmdArgs(tag, dir, buildArgs)

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("%w: exit code %d: %s", ErrBuildFailed, exitErr.ExitCode(), stderr.String())
		}
		return fmt.Errorf("%w: %w", ErrBuildFailed, err)
	}
	return nil
}

// Start runs spec.Image in a new container. Kill removes the container with
// docker kill before reaping the CLI process, since killing the client alone
// leaves the container running.
func (d *DockerRunner) Start(ctx context.Context, spec ProcessSpec) (Process, error) {
	if spec.Image == "" {
		return nil, fmt.Errorf("start %s: image is required", spec.Name)
	}
	name := containerName(spec.Name)

	cmd := exec.CommandContext(ctx, "docker", runCmdArgs(name, spec)...)
	cmd.Stderr = io.Discard
	p, err := startCmd(cmd)
	if err != nil {
		return nil, err
	}
	p.onKill = func() {
		killCtx, cancel := context.WithTimeout(context.Background(), dockerKillTimeout)
		defer cancel()
		kill := exec.CommandContext(killCtx, "docker", "kill", name)
		kill.Stdout = io.Discard
		kill.Stderr = io.Discard
		_ = kill.Run()
	}
	return p, nil
}
