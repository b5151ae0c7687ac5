package main

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/farrowscore/api/audit"
	"github.com/farrowscore/api/config"
	"github.com/farrowscore/api/dao"
	"github.com/farrowscore/api/db"
	logger "github.com/farrowscore/api/logging"
	"github.com/farrowscore/api/util"
)

// backends holds the connections opened for the configured stores so they can
// be closed on shutdown.
type backends struct {
	redis  *redis.Client
	sql    *gorm.DB
	neo4j  neo4j.DriverWithContext
	cipher *db.Cipher
}

func (b *backends) redisClient(cfg *config.Configuration) (*redis.Client, error) {
	if b.redis != nil {
		return b.redis, nil
	}
	client, err := db.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}
	cipher, err := db.NewCipher(cfg.Redis.EncryptionKey)
	if err != nil {
		client.Close()
		return nil, err
	}
	b.redis, b.cipher = client, cipher
	return client, nil
}

func (b *backends) close() {
	if b.redis != nil {
		db.CloseRedis(b.redis)
	}
	if b.sql != nil {
		db.CloseSQL(b.sql)
	}
	if b.neo4j != nil {
		db.CloseNeo4j(b.neo4j)
	}
}

func (b *backends) cacheStore(cfg *config.Configuration) (util.CacheStore, error) {
	switch cfg.Cache.Backend {
	case "", "memory":
		return util.NewMemoryCacheStore(), nil
	case "redis":
		client, err := b.redisClient(cfg)
		if err != nil {
			return nil, err
		}
		return db.NewRedisCacheStore(client, ""), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
}

func (b *backends) transactionStore(ctx context.Context, cfg *config.Configuration) (dao.TransactionStore, error) {
	switch cfg.Payments.Store {
	case "", "memory":
		return dao.NewMemoryTransactionStore(), nil
	case "redis":
		client, err := b.redisClient(cfg)
		if err != nil {
			return nil, err
		}
		return dao.NewRedisTransactionStore(client, b.cipher), nil
	case "sql":
		gdb, err := db.OpenSQL(cfg.SQL)
		if err != nil {
			return nil, err
		}
		b.sql = gdb
		store := dao.NewSQLTransactionStore(gdb)
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case "neo4j":
		driver, err := db.NewNeo4jDriver(ctx, cfg.Neo4j)
		if err != nil {
			return nil, err
		}
		b.neo4j = driver
		store := dao.NewNeo4jTransactionStore(driver)
		if err := store.EnsureUniqueConstraint(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown transaction store %q", cfg.Payments.Store)
	}
}

func paymentProvider(cfg *config.Configuration) (dao.PaymentProvider, error) {
	switch cfg.Payments.Provider {
	case "", "simulated":
		return dao.NewSimulatedPaymentDAO(cfg.Payments.SettleAfter), nil
	case "coinbase":
		if cfg.Payments.Coinbase.APIKey == "" {
			return nil, fmt.Errorf("payments.coinbase.apiKey is required for the coinbase provider")
		}
		return dao.NewCoinbaseDAO(dao.NewHTTPClient(cfg.Sources.Timeout), cfg.Payments.Coinbase.BaseURL, cfg.Payments.Coinbase.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown payment provider %q", cfg.Payments.Provider)
	}
}

func auditService(cfg *config.Configuration) (audit.Service, error) {
	switch cfg.Audit.Backend {
	case "", "log":
		return audit.NewService(audit.NewLogRepository(0)), nil
	case "elasticsearch":
		repo, err := audit.NewElasticsearchRepository(cfg.Elasticsearch.URL)
		if err != nil {
			return nil, err
		}
		return audit.NewService(repo), nil
	default:
		logger.Warn("Unknown audit backend, falling back to log", zap.String("backend", cfg.Audit.Backend))
		return audit.NewService(audit.NewLogRepository(0)), nil
	}
}
