// Command axelrod runs iterated Prisoner's Dilemma tournaments.
//
// Usage:
//
//	axelrod run [-rounds n] [-builtin list] [-dir path] [-entrants list] [-fail-soft] [-timeout d] [-v]
//	axelrod list [-dir path]
//	axelrod serve <strategy>
//
// External entrants are defined as directories under ~/.axelrod/entrants/<name>/
// containing an entrant.json and an optional Dockerfile.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/zoobzio/axelrod"
	"github.com/zoobzio/axelrod/internal/config"
	"github.com/zoobzio/axelrod/internal/otel"
	"github.com/zoobzio/axelrod/strategies"
)

const (
	serviceName         = "axelrod"
	builtinAuthor       = "axelrod"
	otelShutdownTimeout = 5 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := runWithTelemetry(ctx, os.Args[1:])
	stop()
	os.Exit(code)
}

// runWithTelemetry wraps run with tracer setup and a bounded flush on exit.
func runWithTelemetry(ctx context.Context, args []string) int {
	// A config error leaves tracing off; the subcommand reports it.
	cfg, _ := config.Load()
	shutdown, err := otel.Setup(ctx, serviceName, otel.Config{
		Endpoint: cfg.OtelEndpoint,
		Enabled:  cfg.OtelEnabled,
	})
	if err != nil {
		log.Printf("%s otel setup: %v", serviceName, err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", serviceName, err)
		}
	}()
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

// run dispatches the subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "run":
		return runTournament(ctx, args[1:], stdout, stderr)
	case "list":
		return runList(args[1:], stdout, stderr)
	case "serve":
		return runServe(args[1:], stdin, stdout, stderr)
	case "help", "--help", "-h":
		printUsage(stderr)
		return 0
	default:
		fmt.Fprintf(stderr, "axelrod: unknown subcommand %q\n\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func runTournament(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "axelrod: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rounds := fs.Int("rounds", cfg.Rounds, "rounds per match")
	timeout := fs.Duration("timeout", cfg.DecideTimeout, "per-decision timeout for external entrants")
	failSoft := fs.Bool("fail-soft", cfg.FailSoft, "skip failing pairs instead of stopping")
	dir := fs.String("dir", cfg.EntrantsDir, "entrants directory (default ~/.axelrod/entrants)")
	entrants := fs.String("entrants", "", "comma-separated entrant names (default: every entrant in -dir)")
	builtin := fs.String("builtin", "all", `comma-separated builtin strategies, "all" or "none"`)
	verbose := fs.Bool("v", false, "log match events")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	opts := []axelrod.Option{
		axelrod.WithRounds(*rounds),
		axelrod.WithPayoffTable(axelrod.NewPayoffTable(cfg.Reward, cfg.Sucker, cfg.Temptation, cfg.Punishment)),
	}
	if *failSoft {
		opts = append(opts, axelrod.WithFailSoft())
	}
	if *verbose {
		opts = append(opts, axelrod.WithObserver(logEvent(logger)))
	}

	t, err := axelrod.New(opts...)
	if err != nil {
		fmt.Fprintf(stderr, "axelrod: %v\n", err)
		return 1
	}

	if err := registerBuiltins(t, *builtin); err != nil {
		fmt.Fprintf(stderr, "axelrod: %v\n", err)
		return 1
	}
	entrantsDir := resolveEntrantsDir(*dir, *entrants != "")
	if err := registerEntrants(ctx, t, entrantsDir, *entrants, *timeout); err != nil {
		fmt.Fprintf(stderr, "axelrod: %v\n", err)
		return 1
	}
	if t.Len() < 2 {
		fmt.Fprintln(stderr, "axelrod run: at least two competitors are required")
		return 1
	}

	runErr := t.Run(ctx)
	printRanking(stdout, t.Ranking())
	if runErr != nil {
		logger.Printf("axelrod: %v", runErr)
		return 1
	}
	return 0
}

// registerBuiltins adds the builtin strategies named in list.
func registerBuiltins(t *axelrod.Tournament, list string) error {
	var names []string
	switch strings.TrimSpace(list) {
	case "", "none":
		return nil
	case "all":
		names = strategies.Names()
	default:
		names = splitList(list)
	}
	for _, name := range names {
		f, ok := strategies.Lookup(name)
		if !ok {
			return fmt.Errorf("unknown builtin strategy %q", name)
		}
		if _, err := t.AddCompetitor(builtinAuthor, name, f); err != nil {
			return err
		}
	}
	return nil
}

// registerEntrants adds external entrants from dir: the named ones, or all of
// them when names is empty. An empty dir registers nothing unless names are
// given.
func registerEntrants(ctx context.Context, t *axelrod.Tournament, dir, names string, timeout time.Duration) error {
	if dir == "" {
		if names != "" {
			return errors.New("-entrants needs an entrants directory: set -dir or AXELROD_ENTRANTS_DIR")
		}
		return nil
	}
	loader := axelrod.NewLoader(dir, &axelrod.ExecRunner{}, &axelrod.DockerRunner{}, timeout)
	if names == "" {
		_, err := loader.LoadAll(ctx, t)
		return err
	}
	for _, name := range splitList(names) {
		if _, err := loader.Load(ctx, t, name); err != nil {
			return err
		}
	}
	return nil
}

func runList(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "axelrod: %v\n", err)
		return 1
	}

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dir := fs.String("dir", cfg.EntrantsDir, "entrants directory (default ~/.axelrod/entrants)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tAUTHOR")
	for _, name := range strategies.Names() {
		fmt.Fprintf(tw, "%s\tbuiltin\t%s\n", name, builtinAuthor)
	}

	if entrantsDir := resolveEntrantsDir(*dir, false); entrantsDir != "" {
		entrants, err := axelrod.DiscoverAll(entrantsDir)
		if err != nil {
			_ = tw.Flush()
			fmt.Fprintf(stderr, "axelrod: %v\n", err)
			return 1
		}
		for _, e := range entrants {
			kind := "process"
			if e.Containerized() {
				kind = "container"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Name, kind, e.Config.Author)
		}
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "axelrod: %v\n", err)
		return 1
	}
	return 0
}

func runServe(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "axelrod serve: strategy name required")
		return 1
	}
	f, ok := strategies.Lookup(args[0])
	if !ok {
		fmt.Fprintf(stderr, "axelrod serve: unknown strategy %q\n", args[0])
		return 1
	}
	if err := axelrod.Serve(stdin, stdout, f); err != nil {
		fmt.Fprintf(stderr, "axelrod serve: %v\n", err)
		if errors.Is(err, axelrod.ErrProtocol) {
			return 2
		}
		return 1
	}
	return 0
}

// printRanking writes the standings as an aligned table. Scores use locale
// digit grouping.
func printRanking(w io.Writer, standings []axelrod.Standing) {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tAUTHOR\tSCORE")
	for _, s := range standings {
		p.Fprintf(tw, "%d\t%s\t%s\t%d\n", s.Rank, s.Name, s.Author, s.Score)
	}
	_ = tw.Flush()
}

// logEvent returns an observer that logs match boundaries. Rounds are not logged.
func logEvent(logger *log.Logger) func(axelrod.Event) {
	return func(e axelrod.Event) {
		switch e.Type {
		case axelrod.EventMatchStarted:
			logger.Printf("match %s: %s vs %s started", e.MatchID, e.A, e.B)
		case axelrod.EventMatchScored:
			logger.Printf("match %s: %s %d, %s %d", e.MatchID, e.A, e.Payoff.Own, e.B, e.Payoff.Opponent)
		case axelrod.EventMatchFailed:
			logger.Printf("match %s: failed: %v", e.MatchID, e.Err)
		}
	}
}

// resolveEntrantsDir returns dir, or the default entrants directory when dir
// is empty. The default is used only if it exists, unless required is set.
func resolveEntrantsDir(dir string, required bool) string {
	if dir != "" {
		return dir
	}
	def, err := axelrod.DefaultEntrantsDir()
	if err != nil {
		return ""
	}
	if _, err := os.Stat(def); err != nil && !required {
		return ""
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  axelrod run [-rounds n] [-builtin list] [-dir path] [-entrants list] [-fail-soft] [-timeout d] [-v]")
	fmt.Fprintln(w, "  axelrod list [-dir path]")
	fmt.Fprintln(w, "  axelrod serve <strategy>")
}
