// api/service/game_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	score_errors "github.com/farrowscore/api/errors"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/model"
	"github.com/farrowscore/api/util"
	helper_util "github.com/farrowscore/api/util/helper"
)

// IGameService defines the interface for sports data operations
type IGameService interface {
	Resolve(ctx context.Context, kind model.ResourceKind, params model.ResourceParams, dest interface{}) error
	ListGames(ctx context.Context) ([]model.Game, error)
	GetGame(ctx context.Context, gameID string) (*model.Game, error)
	GetGameDetail(ctx context.Context, gameID string) (*model.GameDetail, error)
	GetWinProbability(ctx context.Context, gameID string) ([]model.WinProbabilityPoint, error)
	ListPlayers(ctx context.Context, gameID, teamID string) ([]model.Player, error)
	ListGameEvents(ctx context.Context, gameID string) ([]model.GameEvent, error)
	ListHistoricalGames(ctx context.Context, teamID string, limit int) ([]model.HistoricalGame, error)
	ListTeams(ctx context.Context) ([]model.Team, error)
	CacheStats(ctx context.Context) (util.CacheStats, error)
	ClearCache(ctx context.Context) error
}

// TTLPolicy assigns each resource kind one of two freshness classes.
type TTLPolicy struct {
	Live      time.Duration
	Reference time.Duration
}

func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{Live: 30 * time.Second, Reference: time.Hour}
}

func (p TTLPolicy) For(kind model.ResourceKind) time.Duration {
	switch kind {
	case model.KindHistoricalGames, model.KindTeams:
		return p.Reference
	default:
		return p.Live
	}
}

// GameService resolves resources through the cache and the configured source plan.
type GameService struct {
	cache           *util.CacheService
	registry        *SourceRegistry
	plan            SourcePlan
	ttl             TTLPolicy
	group           singleflight.Group
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IGameService = &GameService{}

func NewGameService(cache *util.CacheService, registry *SourceRegistry, plan SourcePlan, ttl TTLPolicy, notificationSvc *util.NotificationService, eventBus *util.EventBus) *GameService {
	service := &GameService{
		cache:           cache,
		registry:        registry,
		plan:            plan,
		ttl:             ttl,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe(util.EventCacheCleared, service.handleCacheCleared)

	return service
}

func (s *GameService) handleCacheCleared(ctx context.Context, event util.Event) error {
	cleared, _ := event.Payload.(util.CacheClearedEvent)
	return s.notificationSvc.NotifyCacheCleared(ctx, cleared.Keys)
}

// Resolve decodes the resource identified by kind and params into dest, from
// the cache when a fresh entry exists and from the source plan otherwise.
func (s *GameService) Resolve(ctx context.Context, kind model.ResourceKind, params model.ResourceParams, dest interface{}) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %s", score_errors.ErrUnknownResourceKind, kind)
	}

	key := kind.Key(params)
	hit, err := s.cache.Get(ctx, key, s.ttl.For(kind), dest)
	if err != nil {
		logger.Warn("Cache read failed, resolving from sources", logger.ResourceKey(key), zap.Error(err))
	} else if hit {
		return nil
	}

	// The fetch is shared by every waiter on key and its result is cached, so
	// one caller going away must not cut it short; sources.timeout bounds it.
	fetchCtx := context.WithoutCancel(ctx)
	payload, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.fetch(fetchCtx, kind, params, key)
	})
	if err != nil {
		return err
	}
	if shared {
		logger.Debug("Coalesced concurrent resolve", logger.ResourceKey(key))
	}

	if err := json.Unmarshal(payload.([]byte), dest); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", kind, err)
	}
	return nil
}

func (s *GameService) fetch(ctx context.Context, kind model.ResourceKind, params model.ResourceParams, key string) ([]byte, error) {
	for _, source := range s.registry.Chain(s.plan, kind) {
		start := time.Now()
		value, err := source.Fetch(ctx, params)
		if err != nil {
			logger.Warn("Source unavailable, trying next",
				logger.Kind(kind),
				logger.Source(source.Name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			continue
		}

		payload, err := json.Marshal(value)
		if err != nil {
			logger.Warn("Discarding unencodable source result",
				logger.Kind(kind),
				logger.Source(source.Name),
				zap.Error(err))
			continue
		}

		if err := s.cache.Set(ctx, key, json.RawMessage(payload)); err != nil {
			logger.Warn("Failed to cache resolved resource", logger.ResourceKey(key), zap.Error(err))
		}
		logger.Debug("Resolved resource",
			logger.ResourceKey(key),
			logger.Source(source.Name),
			zap.Duration("duration", time.Since(start)))
		return payload, nil
	}

	return nil, fmt.Errorf("%w: every source for %s failed", score_errors.ErrSourceUnavailable, kind)
}

func (s *GameService) ListGames(ctx context.Context) ([]model.Game, error) {
	games := []model.Game{}
	if err := s.Resolve(ctx, model.KindGames, model.ResourceParams{}, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GetGame returns ErrGameNotFound when no source knows the game.
func (s *GameService) GetGame(ctx context.Context, gameID string) (*model.Game, error) {
	var game *model.Game
	if err := s.Resolve(ctx, model.KindGame, model.ResourceParams{GameID: gameID}, &game); err != nil {
		return nil, err
	}
	if game == nil {
		return nil, fmt.Errorf("%w: %s", score_errors.ErrGameNotFound, gameID)
	}
	return game, nil
}

// GetGameDetail resolves the game and its win-probability series concurrently.
func (s *GameService) GetGameDetail(ctx context.Context, gameID string) (*model.GameDetail, error) {
	var (
		game    *model.Game
		winProb []model.WinProbabilityPoint
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		game, err = s.GetGame(gctx, gameID)
		return err
	})
	g.Go(func() error {
		var err error
		winProb, err = s.GetWinProbability(gctx, gameID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.GameDetail{Game: game, WinProbability: winProb}, nil
}

func (s *GameService) GetWinProbability(ctx context.Context, gameID string) ([]model.WinProbabilityPoint, error) {
	points := []model.WinProbabilityPoint{}
	if err := s.Resolve(ctx, model.KindWinProbability, model.ResourceParams{GameID: gameID}, &points); err != nil {
		return nil, err
	}
	if points == nil {
		points = []model.WinProbabilityPoint{}
	}
	return points, nil
}

func (s *GameService) ListPlayers(ctx context.Context, gameID, teamID string) ([]model.Player, error) {
	players := []model.Player{}
	if err := s.Resolve(ctx, model.KindPlayers, model.ResourceParams{GameID: gameID, TeamID: teamID}, &players); err != nil {
		return nil, err
	}
	if players == nil {
		players = []model.Player{}
	}
	return players, nil
}

func (s *GameService) ListGameEvents(ctx context.Context, gameID string) ([]model.GameEvent, error) {
	events := []model.GameEvent{}
	if err := s.Resolve(ctx, model.KindGameEvents, model.ResourceParams{GameID: gameID}, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []model.GameEvent{}
	}
	return events, nil
}

// ListHistoricalGames defaults limit to 10 when zero and rejects values outside 1..100.
func (s *GameService) ListHistoricalGames(ctx context.Context, teamID string, limit int) ([]model.HistoricalGame, error) {
	if limit == 0 {
		limit = helper_util.DefaultHistoryLimit
	}
	if limit < 1 || limit > helper_util.MaxHistoryLimit {
		return nil, fmt.Errorf("%w: %d is outside 1..%d", score_errors.ErrInvalidLimit, limit, helper_util.MaxHistoryLimit)
	}

	games := []model.HistoricalGame{}
	if err := s.Resolve(ctx, model.KindHistoricalGames, model.ResourceParams{TeamID: teamID, Limit: limit}, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []model.HistoricalGame{}
	}
	return games, nil
}

func (s *GameService) ListTeams(ctx context.Context) ([]model.Team, error) {
	teams := []model.Team{}
	if err := s.Resolve(ctx, model.KindTeams, model.ResourceParams{}, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *GameService) CacheStats(ctx context.Context) (util.CacheStats, error) {
	return s.cache.Stats(ctx)
}

func (s *GameService) ClearCache(ctx context.Context) error {
	stats, err := s.cache.Stats(ctx)
	if err != nil {
		logger.Warn("Failed to count cache keys before clearing", zap.Error(err))
	}
	if err := s.cache.Clear(ctx); err != nil {
		return err
	}
	s.eventBus.Publish(ctx, util.EventCacheCleared, util.CacheClearedEvent{Keys: stats.Size})
	return nil
}
