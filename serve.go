package axelrod

import (
	"bufio"
	"fmt"
	"io"
)

// Serve answers protocol requests read from in with decisions of f written to
// out, one line per request, until in reaches EOF. It lets an in-process
// strategy run as an external process. A malformed request stops Serve with
// an error wrapping ErrProtocol.
func Serve(in io.Reader, out io.Writer, f Func) error {
	w := bufio.NewWriter(out)
	scanner := bufio.NewScanner(in)
	// A request grows by four bytes per round; 200 rounds fit the default
	// buffer but long tournaments do not.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		own, opponent, err := DecodeRequest(scanner.Text())
		if err != nil {
			return err
		}
		if _, err := w.WriteString(EncodeDecision(f(own, opponent)) + "\n"); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("write reply: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read request: %w", err)
	}
	return nil
}
