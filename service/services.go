// api/service/services.go
package service

import (
	"github.com/farrowscore/api/audit"
	"github.com/farrowscore/api/config"
	"github.com/farrowscore/api/dao"
	"github.com/farrowscore/api/util"
)

type Services struct {
	Game   IGameService
	Access IAccessService
}

// InitializeServices builds the upstream DAOs from configuration and wires
// them, with the injected stores, into the two facilities.
func InitializeServices(
	cfg *config.Configuration,
	cacheStore util.CacheStore,
	txStore dao.TransactionStore,
	provider dao.PaymentProvider,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) (*Services, error) {
	httpClient := dao.NewHTTPClient(cfg.Sources.Timeout)

	fixtures, err := dao.NewFixtureDAO()
	if err != nil {
		return nil, err
	}
	espn := dao.NewESPNDAO(httpClient, cfg.Sources.ESPN.BaseURL)
	sportsData := dao.NewSportsDataDAO(
		httpClient,
		cfg.Sources.SportsData.BaseURL,
		cfg.Sources.SportsData.APIKey,
		cfg.Sources.SportsData.Season,
		cfg.Sources.SportsData.HistoricalSeason,
	)

	plan, err := PlanFromConfig(cfg.Sources.Plan)
	if err != nil {
		return nil, err
	}

	ttl := DefaultTTLPolicy()
	if cfg.Cache.LiveTTL > 0 {
		ttl.Live = cfg.Cache.LiveTTL
	}
	if cfg.Cache.ReferenceTTL > 0 {
		ttl.Reference = cfg.Cache.ReferenceTTL
	}

	registry := NewDefaultSourceRegistry(espn, sportsData, fixtures)
	cacheService := util.NewCacheService(cacheStore)

	services := &Services{
		Game:   NewGameService(cacheService, registry, plan, ttl, notificationSvc, eventBus),
		Access: NewAccessService(txStore, provider, auditService, validationUtil, notificationSvc, eventBus),
	}

	return services, nil
}
