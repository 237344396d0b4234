package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"football-fair-odds/internal/market"
	"football-fair-odds/internal/model"
	"football-fair-odds/internal/odds"
	"football-fair-odds/internal/query"
)

// ErrNoModel is returned by queries made before any model was loaded.
var ErrNoModel = errors.New("no model computed yet: load supremacy/expectancy or 1X2 + total first")

// Engine holds the current model snapshot and answers market queries
// against it. Loading a model replaces the snapshot wholesale; queries
// already holding the previous one are unaffected.
type Engine struct {
	current   atomic.Pointer[model.State]
	catalogue market.CatalogueOptions
}

// New creates an Engine with no model loaded.
func New(catalogue market.CatalogueOptions) *Engine {
	return &Engine{catalogue: catalogue}
}

// Quote is a priced market query.
type Quote struct {
	ModelID string
	Label   string
	Price   odds.Price
}

// Load installs s as the current model.
func (e *Engine) Load(s *model.State) {
	e.current.Store(s)
	slog.Info("Model loaded",
		"id", s.ID,
		"source", s.Source,
		"homeFT", s.Rates.HomeFT,
		"awayFT", s.Rates.AwayFT,
		"solverErr", s.SolverError,
	)
}

// LoadSupremacy derives and installs a model from supremacy and expectancy.
// On error the current model is left untouched.
func (e *Engine) LoadSupremacy(supremacy, expectancy float64) (*model.State, error) {
	s, err := model.FromSupremacy(supremacy, expectancy)
	if err != nil {
		slog.Warn("Rejected supremacy input", "supremacy", supremacy, "expectancy", expectancy, "err", err)
		return nil, err
	}
	e.Load(s)
	return s, nil
}

// LoadMarket derives and installs a model from 1X2 percentages and total goals.
// On error the current model is left untouched.
func (e *Engine) LoadMarket(pctHome, pctDraw, pctAway, totalGoals float64) (*model.State, error) {
	s, err := model.FromMarket(pctHome, pctDraw, pctAway, totalGoals)
	if err != nil {
		slog.Warn("Could not derive model from market",
			"home", pctHome, "draw", pctDraw, "away", pctAway, "total", totalGoals, "err", err)
		return nil, err
	}
	e.Load(s)
	return s, nil
}

// Current returns the loaded model or ErrNoModel.
func (e *Engine) Current() (*model.State, error) {
	s := e.current.Load()
	if s == nil {
		return nil, ErrNoModel
	}
	return s, nil
}

// Price evaluates a programmatic condition set.
func (e *Engine) Price(label string, c market.Conditions) (Quote, error) {
	s, err := e.Current()
	if err != nil {
		return Quote{}, err
	}
	p := s.Price(c)
	slog.Debug("Priced market", "model", s.ID, "label", label, "prob", p)
	return Quote{ModelID: s.ID.String(), Label: label, Price: odds.Format(p)}, nil
}

// PriceText parses a text query and prices it.
func (e *Engine) PriceText(text string) (Quote, error) {
	// Fail fast on a missing model before reporting parse problems.
	if _, err := e.Current(); err != nil {
		return Quote{}, err
	}
	res, err := query.Parse(text)
	if err != nil {
		slog.Warn("Query rejected", "query", text, "err", err)
		return Quote{}, err
	}
	return e.Price(res.Label, res.Conditions)
}

// Handicap prices a home Asian handicap line.
func (e *Engine) Handicap(line float64) (market.HandicapPrice, error) {
	s, err := e.Current()
	if err != nil {
		return market.HandicapPrice{}, err
	}
	hp, err := s.Handicap(line)
	if err != nil {
		return market.HandicapPrice{}, fmt.Errorf("pricing handicap: %w", err)
	}
	if hp.AllPush {
		slog.Debug("Handicap line is all push", "model", s.ID, "line", line)
	}
	return hp, nil
}

// Markets prices the standard catalogue.
func (e *Engine) Markets() ([]market.Quote, error) {
	s, err := e.Current()
	if err != nil {
		return nil, err
	}
	return market.Catalogue(s.FirstHalf, s.SecondHalf, e.catalogue), nil
}
