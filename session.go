package axelrod

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// replyLine is one line read from a process, or the error that ended reading.
type replyLine struct {
	err  error
	text string
}

// session is one external process attached for the duration of a match.
//
// A reader goroutine scans the process's stdout and hands lines to roundTrip
// over an unbuffered channel. It exits when stdout reaches EOF or the session
// is stopped, whichever comes first.
type session struct {
	proc    Process
	lines   chan replyLine
	done    chan struct{}
	id      string
	timeout time.Duration
	once    sync.Once // guards done close and proc.Kill
	stopErr error
}

func newSession(proc Process, timeout time.Duration) *session {
	s := &session{
		id:      uuid.NewString(),
		proc:    proc,
		timeout: timeout,
		lines:   make(chan replyLine),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(s.lines)
		scanner := bufio.NewScanner(proc.Stdout())
		for scanner.Scan() {
			select {
			case s.lines <- replyLine{text: scanner.Text()}:
			case <-s.done:
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case s.lines <- replyLine{err: err}:
		case <-s.done:
		}
	}()

	return s
}

// roundTrip writes request and waits for exactly one reply line. The timeout
// bounds the write and the read together. A timeout, a closed stdout, a
// write failure or a line the process sent before being asked is reported
// as ErrProtocol.
func (s *session) roundTrip(ctx context.Context, request string) (string, error) {
	var timeout <-chan time.Time
	if s.timeout > 0 {
		timer := time.NewTimer(s.timeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case reply, ok := <-s.lines:
		if !ok || reply.err != nil {
			return "", fmt.Errorf("%w: process output closed", ErrProtocol)
		}
		return "", fmt.Errorf("%w: unsolicited reply %q", ErrProtocol, reply.text)
	default:
	}

	// A process that stops reading its stdin blocks the write once the pipe
	// is full. The writer exits when Stop kills the process.
	written := make(chan error, 1)
	go func() {
		_, err := io.WriteString(s.proc.Stdin(), request)
		written <- err
	}()

	select {
	case err := <-written:
		if err != nil {
			return "", fmt.Errorf("%w: write request: %w", ErrProtocol, err)
		}
	case <-timeout:
		return "", fmt.Errorf("%w: request not read within %s", ErrProtocol, s.timeout)
	case <-s.done:
		return "", fmt.Errorf("%w: session stopped", ErrProtocol)
	case <-ctx.Done():
		return "", ctx.Err()
	}

	select {
	case reply, ok := <-s.lines:
		if !ok {
			return "", fmt.Errorf("%w: process output closed", ErrProtocol)
		}
		if reply.err != nil {
			return "", fmt.Errorf("%w: read reply: %w", ErrProtocol, reply.err)
		}
		return reply.text, nil
	case <-timeout:
		return "", fmt.Errorf("%w: no reply within %s", ErrProtocol, s.timeout)
	case <-s.done:
		return "", fmt.Errorf("%w: session stopped", ErrProtocol)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ID returns the unique session identifier.
func (s *session) ID() string {
	return s.id
}

// Stop kills the process. Stop is idempotent and always returns the result
// of the first call.
func (s *session) Stop() error {
	s.once.Do(func() {
		close(s.done)
		s.stopErr = s.proc.Kill()
	})
	return s.stopErr
}
