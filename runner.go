package axelrod

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"sync"
)

// Runner launches external decision processes.
type Runner interface {
	// Start launches the process described by spec and returns a handle
	// attached to its standard streams. The process keeps running until
	// Kill is called or ctx is cancelled.
	Start(ctx context.Context, spec ProcessSpec) (Process, error)
}

// Process is a running external decision process.
type Process interface {
	// Stdin is the write side of the process's standard input.
	Stdin() io.Writer
	// Stdout is the read side of the process's standard output.
	Stdout() io.Reader
	// Kill terminates the process and releases its resources.
	// It is safe to call more than once.
	Kill() error
}

// ProcessSpec describes an external decision process.
type ProcessSpec struct {
	Name    string            // entrant name; used to label containers
	Image   string            // Docker image; empty for a local command
	Command []string          // command and arguments
	Env     map[string]string // extra environment variables
	Workdir string            // working directory for the command
}

// ExecRunner implements Runner by starting local commands via os/exec.
type ExecRunner struct{}

// Start starts spec.Command as a child process. Stderr is discarded.
func (r *ExecRunner) Start(ctx context.Context, spec ProcessSpec) (Process, error) {
	if len(spec.Command) == 0 {
		return nil, fmt.Errorf("start %s: empty command", spec.Name)
	}
	//nolint:gosec // commands come from entrant definitions chosen by the operator
	cmd := exec.CommandContext(ctx, spec.Command[0], spec.Command[1:]...)
	cmd.Dir = spec.Workdir
	cmd.Env = commandEnv(spec.Env)
	cmd.Stderr = io.Discard
	return startCmd(cmd)
}

// commandEnv returns nil (inherit the parent environment) when env is empty.
func commandEnv(env map[string]string) []string {
	if len(env) == 0 {
		return nil
	}
	return append(os.Environ(), sortedEnv(env)...)
}

// sortedEnv renders env as K=V pairs in key order.
func sortedEnv(env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + env[k]
	}
	return pairs
}

// cmdProcess adapts a started *exec.Cmd to Process.
type cmdProcess struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  io.ReadCloser
	onKill  func()
	once    sync.Once
	killErr error
}

func startCmd(cmd *exec.Cmd) (*cmdProcess, error) {
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", cmd.Path, err)
	}
	return &cmdProcess{cmd: cmd, stdin: stdin, stdout: stdout}, nil
}

func (p *cmdProcess) Stdin() io.Writer  { return p.stdin }
func (p *cmdProcess) Stdout() io.Reader { return p.stdout }

// Kill closes stdin, kills the process and reaps it. The exit status of a
// killed process is not an error.
func (p *cmdProcess) Kill() error {
	p.once.Do(func() {
		if p.onKill != nil {
			p.onKill()
		}
		_ = p.stdin.Close()
		if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			p.killErr = fmt.Errorf("kill %s: %w", p.cmd.Path, err)
		}
		// Wait closes the stdout pipe, which unblocks any reader.
		var exitErr *exec.ExitError
		if err := p.cmd.Wait(); err != nil && !errors.As(err, &exitErr) && p.killErr == nil {
			p.killErr = fmt.Errorf("wait %s: %w", p.cmd.Path, err)
		}
	})
	return p.killErr
}
