// Package strategies provides classic in-process Prisoner's Dilemma strategies.
package strategies

import (
	"sort"

	"github.com/zoobzio/axelrod"
)

// AlwaysCooperate cooperates every round.
var AlwaysCooperate = axelrod.Func(func(_, _ []bool) bool { return true })

// AlwaysDefect defects every round.
var AlwaysDefect = axelrod.Func(func(_, _ []bool) bool { return false })

// TitForTat cooperates first, then repeats the opponent's last move.
var TitForTat = axelrod.Func(func(_, opponent []bool) bool {
	if len(opponent) == 0 {
		return true
	}
	return opponent[len(opponent)-1]
})

// SuspiciousTitForTat defects first, then repeats the opponent's last move.
var SuspiciousTitForTat = axelrod.Func(func(_, opponent []bool) bool {
	if len(opponent) == 0 {
		return false
	}
	return opponent[len(opponent)-1]
})

// Alternate cooperates first, then flips its own previous move.
var Alternate = axelrod.Func(func(own, _ []bool) bool {
	if len(own) == 0 {
		return true
	}
	return !own[len(own)-1]
})

// Grudger cooperates until the opponent defects once, then defects forever.
var Grudger = axelrod.Func(func(_, opponent []bool) bool {
	for _, d := range opponent {
		if !d {
			return false
		}
	}
	return true
})

// Shubik cooperates first and retaliates against each defection with a run of
// defections. The run lasts one round more for every time it was exploited
// while cooperating, and at least one round.
var Shubik = axelrod.Func(func(own, opponent []bool) bool {
	round := len(own) + 1
	if round == 1 {
		return true
	}

	exploited := 0
	lastDefection := 0 // 1-based round of the opponent's latest defection
	for i := range opponent {
		if own[i] && !opponent[i] {
			exploited++
		}
		if !opponent[i] {
			lastDefection = i + 1
		}
	}
	punishment := max(1, exploited)

	punishing := lastDefection > 0 && round <= lastDefection+punishment
	return opponent[len(opponent)-1] && !punishing
})

var builtins = map[string]axelrod.Func{
	"always-cooperate":       AlwaysCooperate,
	"always-defect":          AlwaysDefect,
	"tit-for-tat":            TitForTat,
	"suspicious-tit-for-tat": SuspiciousTitForTat,
	"alternate":              Alternate,
	"grudger":                Grudger,
	"shubik":                 Shubik,
}

// Lookup returns the builtin strategy registered under name.
func Lookup(name string) (axelrod.Func, bool) {
	f, ok := builtins[name]
	return f, ok
}

// Names returns the names of all builtin strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
