// api/service/source_plan.go
package service

import (
	"context"
	"fmt"

	"github.com/farrowscore/api/dao"
	score_errors "github.com/farrowscore/api/errors"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
)

// Source names used in plans.
const (
	SourceESPN       = "espn"
	SourceSportsData = "sportsdata"
	SourceFixtures   = "fixtures"
)

// SourceFunc fetches one resource kind from one upstream.
type SourceFunc func(ctx context.Context, params model.ResourceParams) (interface{}, error)

// Source is a named fetch strategy.
type Source struct {
	Name  string
	Fetch SourceFunc
}

// SourcePlan lists, per kind, the source names to try in order.
type SourcePlan map[model.ResourceKind][]string

func DefaultSourcePlan() SourcePlan {
	return SourcePlan{
		model.KindGames:           {SourceESPN, SourceFixtures},
		model.KindGame:            {SourceESPN, SourceFixtures},
		model.KindWinProbability:  {SourceFixtures},
		model.KindPlayers:         {SourceSportsData, SourceFixtures},
		model.KindGameEvents:      {SourceFixtures},
		model.KindHistoricalGames: {SourceSportsData, SourceFixtures},
		model.KindTeams:           {SourceESPN, SourceFixtures},
	}
}

// PlanFromConfig overlays configured plans on the defaults. Keys that are not
// resource kinds are rejected.
func PlanFromConfig(overrides map[string][]string) (SourcePlan, error) {
	plan := DefaultSourcePlan()
	for k, names := range overrides {
		kind := model.ResourceKind(k)
		if !kind.Valid() {
			return nil, fmt.Errorf("%w: %s", score_errors.ErrUnknownResourceKind, k)
		}
		plan[kind] = append([]string(nil), names...)
	}
	return plan, nil
}

// SourceRegistry holds the strategies available per kind, by name.
type SourceRegistry struct {
	sources map[model.ResourceKind]map[string]SourceFunc
}

func NewSourceRegistry() *SourceRegistry {
	return &SourceRegistry{sources: make(map[model.ResourceKind]map[string]SourceFunc)}
}

func (r *SourceRegistry) Register(kind model.ResourceKind, name string, fn SourceFunc) {
	if r.sources[kind] == nil {
		r.sources[kind] = make(map[string]SourceFunc)
	}
	r.sources[kind][name] = fn
}

// Chain resolves the plan's names for kind into strategies. Names with no
// registered strategy for the kind are skipped.
func (r *SourceRegistry) Chain(plan SourcePlan, kind model.ResourceKind) []Source {
	names := plan[kind]
	chain := make([]Source, 0, len(names))
	for _, name := range names {
		fn, ok := r.sources[kind][name]
		if !ok {
			logger.Debug("No source registered for kind", logger.Kind(kind), logger.Source(name))
			continue
		}
		chain = append(chain, Source{Name: name, Fetch: fn})
	}
	return chain
}

// NewDefaultSourceRegistry wires the upstream DAOs and the fixture set. The
// SportsData strategies are registered only when an API key is configured.
func NewDefaultSourceRegistry(espn *dao.ESPNDAO, sportsData *dao.SportsDataDAO, fixtures *dao.FixtureDAO) *SourceRegistry {
	r := NewSourceRegistry()

	if espn != nil {
		r.Register(model.KindGames, SourceESPN, func(ctx context.Context, _ model.ResourceParams) (interface{}, error) {
			return espn.ListGames(ctx)
		})
		r.Register(model.KindGame, SourceESPN, func(ctx context.Context, p model.ResourceParams) (interface{}, error) {
			return espn.GetGame(ctx, p.GameID)
		})
		r.Register(model.KindTeams, SourceESPN, func(ctx context.Context, _ model.ResourceParams) (interface{}, error) {
			return espn.ListTeams(ctx)
		})
	}

	if sportsData != nil && sportsData.Enabled() {
		r.Register(model.KindPlayers, SourceSportsData, func(ctx context.Context, p model.ResourceParams) (interface{}, error) {
			return sportsData.ListPlayerStats(ctx, p.GameID, p.TeamID)
		})
		r.Register(model.KindHistoricalGames, SourceSportsData, func(ctx context.Context, p model.ResourceParams) (interface{}, error) {
			return sportsData.ListHistoricalGames(ctx, p.TeamID, p.Limit)
		})
	}

	r.Register(model.KindGames, SourceFixtures, func(_ context.Context, _ model.ResourceParams) (interface{}, error) {
		return fixtures.Games(), nil
	})
	r.Register(model.KindGame, SourceFixtures, func(_ context.Context, p model.ResourceParams) (interface{}, error) {
		return fixtures.Game(p.GameID), nil
	})
	r.Register(model.KindWinProbability, SourceFixtures, func(_ context.Context, p model.ResourceParams) (interface{}, error) {
		return fixtures.WinProbability(p.GameID), nil
	})
	r.Register(model.KindPlayers, SourceFixtures, func(_ context.Context, p model.ResourceParams) (interface{}, error) {
		return fixtures.Players(p.GameID, p.TeamID), nil
	})
	r.Register(model.KindGameEvents, SourceFixtures, func(_ context.Context, p model.ResourceParams) (interface{}, error) {
		return fixtures.Events(p.GameID), nil
	})
	r.Register(model.KindHistoricalGames, SourceFixtures, func(_ context.Context, p model.ResourceParams) (interface{}, error) {
		return fixtures.Historical(p.TeamID, p.Limit), nil
	})
	r.Register(model.KindTeams, SourceFixtures, func(_ context.Context, _ model.ResourceParams) (interface{}, error) {
		return fixtures.Teams(), nil
	})

	return r
}
