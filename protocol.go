package axelrod

import (
	"fmt"
	"strings"
)

// Wire tokens of the external decision protocol.
const (
	tokenCooperate = "T"
	tokenDefect    = "F"
	historySep     = ","
	sideSep        = "|"
)

// EncodeRequest renders both histories as one request line, newline included.
// Histories [true true] and [false false] encode as "T,T|F,F\n".
func EncodeRequest(own, opponent []bool) string {
	var b strings.Builder
	writeHistory(&b, own)
	b.WriteString(sideSep)
	writeHistory(&b, opponent)
	b.WriteByte('\n')
	return b.String()
}

func writeHistory(b *strings.Builder, history []bool) {
	for i, d := range history {
		if i > 0 {
			b.WriteString(historySep)
		}
		b.WriteString(EncodeDecision(d))
	}
}

// EncodeDecision returns the wire token for a decision.
func EncodeDecision(d bool) string {
	if d {
		return tokenCooperate
	}
	return tokenDefect
}

// DecodeResponse parses one reply line. The trailing newline may be present
// or already stripped; a trailing carriage return is tolerated.
func DecodeResponse(line string) (bool, error) {
	token := strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	switch token {
	case tokenCooperate:
		return true, nil
	case tokenDefect:
		return false, nil
	default:
		return false, fmt.Errorf("%w: unexpected reply %q", ErrProtocol, token)
	}
}

// DecodeRequest parses a request line back into both histories. It rejects
// lines whose histories differ in length.
func DecodeRequest(line string) (own, opponent []bool, err error) {
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
	left, right, ok := strings.Cut(line, sideSep)
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing %q in request %q", ErrProtocol, sideSep, line)
	}
	if own, err = decodeHistory(left); err != nil {
		return nil, nil, err
	}
	if opponent, err = decodeHistory(right); err != nil {
		return nil, nil, err
	}
	if len(own) != len(opponent) {
		return nil, nil, fmt.Errorf("%w: history lengths differ (%d, %d)", ErrProtocol, len(own), len(opponent))
	}
	return own, opponent, nil
}

func decodeHistory(s string) ([]bool, error) {
	if s == "" {
		return []bool{}, nil
	}
	tokens := strings.Split(s, historySep)
	history := make([]bool, len(tokens))
	for i, tok := range tokens {
		switch tok {
		case tokenCooperate:
			history[i] = true
		case tokenDefect:
			history[i] = false
		default:
			return nil, fmt.Errorf("%w: unexpected history token %q", ErrProtocol, tok)
		}
	}
	return history, nil
}
