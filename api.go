// Package axelrod runs Axelrod-style iterated Prisoner's Dilemma tournaments.
//
// Competitors are strategies registered under a unique name. A strategy is
// either an in-process function or an external process that speaks a
// line-based protocol over stdin and stdout. The tournament plays every
// unordered pair once for a fixed number of rounds, scores each round from a
// payoff table, and ranks competitors by total score.
//
// # Basic usage
//
//	t, err := axelrod.New(axelrod.WithRounds(200))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	t.AddCompetitor("Anatol Rapoport", "tit-for-tat", strategies.TitForTat)
//	t.AddCompetitor("clem", "la-balance", strategies.AlwaysDefect)
//
//	if err := t.Run(ctx); err != nil {
//	    log.Print(err)
//	}
//	for _, s := range t.Ranking() {
//	    fmt.Println(s.Rank, s.Name, s.Score)
//	}
//
// # Match lifecycle
//
// For each pair the tournament calls BeginMatch on both competitors, plays
// the rounds, updates both scores and calls EndMatch on both. EndMatch runs
// exactly once for every competitor that began, including when a decision
// fails part way through. Neither competitor sees the other's decision for
// the current round.
//
//	MatchStarted → RoundPlayed* → MatchScored → MatchClosed
//
// # External strategies
//
// ProcessStrategy starts one process per match through a Runner (ExecRunner
// for local commands, DockerRunner for containers) and kills it when the
// match ends. Each round it writes one request line and reads one reply:
//
//	T,T|F,F      own history | opponent history, T = cooperate, F = defect
//	T            the decision
//
// Writing the request and reading the reply share one timeout. A process
// must send nothing except its replies: output sent before a request is a
// protocol violation.
//
// Serve implements the other side of the protocol for a Func.
//
// Entrants are directories under ~/.axelrod/entrants/<name>/ containing an
// entrant.json and optionally a Dockerfile. See EntrantConfig.
package axelrod
