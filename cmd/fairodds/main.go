package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"football-fair-odds/internal/analysis"
	"football-fair-odds/internal/config"
	"football-fair-odds/internal/engine"
	"football-fair-odds/internal/logging"
	"football-fair-odds/internal/market"
	"football-fair-odds/internal/model"
	"football-fair-odds/internal/odds"
	"football-fair-odds/internal/query"
	"football-fair-odds/internal/scoreline"
)

// Exit codes
const (
	exitOK         = 0
	exitError      = 1
	exitInput      = 2
	exitUnsolvable = 3
)

var errUsage = errors.New("need either -supremacy/-expectancy or -home/-draw/-away/-total")

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(exitError)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(exitError)
	}
	logging.Setup(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	err = run(os.Args[1:], os.Stdout, engine.New(cfg.Catalogue()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(exitCode(err))
}

// exitCode maps an error from run to a process exit status.
func exitCode(err error) int {
	var pe *query.ParseError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, analysis.ErrUnsolvable):
		return exitUnsolvable
	case errors.Is(err, errUsage),
		errors.Is(err, flag.ErrHelp),
		errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, market.ErrInvalidLine),
		errors.As(err, &pe):
		return exitInput
	default:
		return exitError
	}
}

type options struct {
	supremacy  float64
	expectancy float64
	home       float64
	draw       float64
	away       float64
	total      float64
	handicaps  []float64
	queries    []string
	markets    bool
	grid       bool
}

func parseFlags(args []string, stderr io.Writer) (options, map[string]bool, error) {
	var opts options
	fs := flag.NewFlagSet("fairodds", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Float64Var(&opts.supremacy, "supremacy", 0, "goal supremacy, negative favours home")
	fs.Float64Var(&opts.expectancy, "expectancy", 0, "expected total goals")
	fs.Float64Var(&opts.home, "home", 0, "home win percentage")
	fs.Float64Var(&opts.draw, "draw", 0, "draw percentage")
	fs.Float64Var(&opts.away, "away", 0, "away win percentage")
	fs.Float64Var(&opts.total, "total", 0, "expected total goals for the 1X2 solver")
	fs.Func("handicap", "home Asian handicap line (repeatable)", func(s string) error {
		var line float64
		if _, err := fmt.Sscanf(s, "%g", &line); err != nil {
			return fmt.Errorf("bad handicap %q", s)
		}
		opts.handicaps = append(opts.handicaps, line)
		return nil
	})
	fs.Func("query", "market query, e.g. \"1h o0.5 and ft btts yes\" (repeatable)", func(s string) error {
		opts.queries = append(opts.queries, s)
		return nil
	})
	fs.BoolVar(&opts.markets, "markets", false, "print the standard market catalogue")
	fs.BoolVar(&opts.grid, "grid", false, "print the full-time correct score grid")

	if err := fs.Parse(args); err != nil {
		return options{}, nil, err
	}
	opts.queries = append(opts.queries, fs.Args()...)

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set, nil
}

func run(args []string, out io.Writer, eng *engine.Engine) error {
	opts, set, err := parseFlags(args, out)
	if err != nil {
		return err
	}

	var state *model.State
	switch {
	case set["supremacy"] || set["expectancy"]:
		state, err = eng.LoadSupremacy(opts.supremacy, opts.expectancy)
	case set["home"] || set["draw"] || set["away"] || set["total"]:
		state, err = eng.LoadMarket(opts.home, opts.draw, opts.away, opts.total)
	default:
		return errUsage
	}
	if err != nil {
		return err
	}

	printModel(out, state)
	if opts.grid {
		printGrid(out, state.FullTimeDisplay())
	}

	for _, text := range opts.queries {
		q, err := eng.PriceText(text)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%-40s %s\n", q.Label, q.Price)
	}

	for _, line := range opts.handicaps {
		hp, err := eng.Handicap(line)
		if err != nil {
			return err
		}
		printHandicap(out, hp)
	}

	if opts.markets {
		quotes, err := eng.Markets()
		if err != nil {
			return err
		}
		printMarkets(out, quotes)
	}

	slog.Debug("Run complete", "model", state.ID, "queries", len(opts.queries), "handicaps", len(opts.handicaps))
	return nil
}

func printModel(out io.Writer, s *model.State) {
	r := s.Rates
	fmt.Fprintf(out, "Model %s (%s)\n", s.ID, s.Source)
	fmt.Fprintf(out, "  FT  home %.3f  away %.3f  (exp %.3f, sup %+.3f)\n", r.HomeFT, r.AwayFT, r.Expectancy(), r.Supremacy())
	fmt.Fprintf(out, "  1H  home %.3f  away %.3f\n", r.HomeH1, r.AwayH1)
	fmt.Fprintf(out, "  2H  home %.3f  away %.3f\n", r.HomeH2, r.AwayH2)
	if s.Source == model.SourceMarket {
		fmt.Fprintf(out, "  solver error %.6f\n", s.SolverError)
	}
}

func printGrid(out io.Writer, m *scoreline.Matrix) {
	var b strings.Builder
	b.WriteString("\nCorrect score (home down, away across)\n     ")
	for a := 0; a <= m.MaxGoals(); a++ {
		fmt.Fprintf(&b, "%7d", a)
	}
	b.WriteByte('\n')
	for h := 0; h <= m.MaxGoals(); h++ {
		fmt.Fprintf(&b, "%5d", h)
		for a := 0; a <= m.MaxGoals(); a++ {
			fmt.Fprintf(&b, "%6.2f%%", m.At(h, a)*100)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintln(out, b.String())
}

func printHandicap(out io.Writer, hp market.HandicapPrice) {
	if hp.AllPush {
		fmt.Fprintf(out, "AH %+.2f  all push\n", hp.Line)
		return
	}
	fmt.Fprintf(out, "AH %+.2f  home %s  away %s", hp.Line, odds.Format(hp.Home), odds.Format(hp.Away))
	if hp.Push > 0 {
		fmt.Fprintf(out, "  push %.2f%%", hp.Push*100)
	}
	fmt.Fprintln(out)
}

func printMarkets(out io.Writer, quotes []market.Quote) {
	group := ""
	for _, q := range quotes {
		if q.Group != group {
			group = q.Group
			fmt.Fprintf(out, "\n[%s]\n", group)
		}
		if q.NoPrice {
			fmt.Fprintf(out, "  %-24s no price\n", q.Name)
			continue
		}
		fmt.Fprintf(out, "  %-24s %s\n", q.Name, odds.Format(q.Probability))
	}
}
