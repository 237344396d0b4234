// Package model derives the goal rates and half-time scoreline matrices
// that every market price is computed from.
package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"football-fair-odds/internal/analysis"
	"football-fair-odds/internal/market"
	"football-fair-odds/internal/odds"
	"football-fair-odds/internal/scoreline"
)

// Share of full-time goal expectancy assigned to each half.
const (
	FirstHalfShare  = 0.45
	SecondHalfShare = 0.55
)

// ErrInvalidInput is returned for out-of-domain forward or inverse inputs.
var ErrInvalidInput = errors.New("invalid model input")

// Source records which input path produced a State.
type Source string

const (
	SourceSupremacy Source = "supremacy"
	SourceMarket    Source = "market"
)

// GoalRateSet holds full-time and per-half Poisson rates for both teams.
type GoalRateSet struct {
	HomeFT float64
	AwayFT float64
	HomeH1 float64
	AwayH1 float64
	HomeH2 float64
	AwayH2 float64
}

// NewGoalRates splits full-time rates into halves.
func NewGoalRates(homeFT, awayFT float64) GoalRateSet {
	return GoalRateSet{
		HomeFT: homeFT,
		AwayFT: awayFT,
		HomeH1: homeFT * FirstHalfShare,
		AwayH1: awayFT * FirstHalfShare,
		HomeH2: homeFT * SecondHalfShare,
		AwayH2: awayFT * SecondHalfShare,
	}
}

// Expectancy returns expected total goals at full time.
func (g GoalRateSet) Expectancy() float64 {
	return g.HomeFT + g.AwayFT
}

// Supremacy returns the signed rate difference (negative = home favoured).
func (g GoalRateSet) Supremacy() float64 {
	return g.AwayFT - g.HomeFT
}

// State is one immutable model run. Re-deriving builds a new State; any
// holder of an older one keeps a consistent snapshot.
type State struct {
	ID         uuid.UUID
	Source     Source
	Rates      GoalRateSet
	FirstHalf  *scoreline.Matrix
	SecondHalf *scoreline.Matrix
	// SolverError is the squared 1X2 error for market-derived states.
	SolverError float64
}

func newState(source Source, homeFT, awayFT float64) *State {
	rates := NewGoalRates(homeFT, awayFT)
	return &State{
		ID:         uuid.New(),
		Source:     source,
		Rates:      rates,
		FirstHalf:  scoreline.Build(rates.HomeH1, rates.AwayH1, scoreline.CalcMaxGoals),
		SecondHalf: scoreline.Build(rates.HomeH2, rates.AwayH2, scoreline.CalcMaxGoals),
	}
}

// FromSupremacy builds a model from goal supremacy and expectancy.
//
//	λ_home = (expectancy − supremacy) / 2
//	λ_away = (expectancy + supremacy) / 2
//
// Negative supremacy favours the home side.
func FromSupremacy(supremacy, expectancy float64) (*State, error) {
	if !finite(supremacy) || !finite(expectancy) {
		return nil, fmt.Errorf("%w: supremacy and expectancy must be numbers", ErrInvalidInput)
	}
	if expectancy <= 0 {
		return nil, fmt.Errorf("%w: expectancy must be positive, got %v", ErrInvalidInput, expectancy)
	}
	if math.Abs(supremacy) > expectancy {
		return nil, fmt.Errorf("%w: |supremacy| %v exceeds expectancy %v", ErrInvalidInput, math.Abs(supremacy), expectancy)
	}

	home := (expectancy - supremacy) / 2
	away := (expectancy + supremacy) / 2
	return newState(SourceSupremacy, home, away), nil
}

// FromMarket builds a model from 1X2 percentages and a total goals line.
// Percentages must sum to within ±1 of 100; they are normalized before
// solving. Solver failures wrap analysis.ErrUnsolvable.
func FromMarket(pctHome, pctDraw, pctAway, totalGoals float64) (*State, error) {
	if !finite(totalGoals) || totalGoals <= 0 {
		return nil, fmt.Errorf("%w: total goals must be positive, got %v", ErrInvalidInput, totalGoals)
	}

	home, draw, away, err := odds.NormalizePercentages(pctHome, pctDraw, pctAway)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	lambdas, err := analysis.DeriveLambdas(totalGoals, scoreline.Outcome{Home: home, Draw: draw, Away: away})
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("deriving goal rates: %w", err)
	}

	s := newState(SourceMarket, lambdas.Home, lambdas.Away)
	s.SolverError = lambdas.Error
	return s, nil
}

// FullTimeDisplay returns the full-time correct score grid at the display bound.
func (s *State) FullTimeDisplay() *scoreline.Matrix {
	return scoreline.Build(s.Rates.HomeFT, s.Rates.AwayFT, scoreline.DisplayMaxGoals)
}

// Price returns the joint probability of c against this state's half matrices.
func (s *State) Price(c market.Conditions) float64 {
	return market.Evaluate(c, s.FirstHalf, s.SecondHalf)
}

// Handicap prices a home Asian handicap line.
func (s *State) Handicap(line float64) (market.HandicapPrice, error) {
	return market.Handicap(line, s.FirstHalf, s.SecondHalf)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
