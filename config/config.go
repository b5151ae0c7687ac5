// api/config/config.go
package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Log           LogConfiguration
	Cache         CacheConfiguration
	Redis         RedisConfiguration
	Sources       SourcesConfiguration
	Payments      PaymentsConfiguration
	SQL           SQLConfiguration
	Neo4j         Neo4jConfiguration
	Audit         AuditConfiguration
	Elasticsearch ElasticsearchConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port            string
	RateLimit       int
	RateLimitWindow time.Duration
	// TrustedProxies may set the client IP through X-Forwarded-For; empty trusts none.
	TrustedProxies []string
}

type LogConfiguration struct {
	Dir     string
	Level   string
	Console bool
}

// CacheConfiguration selects the resource cache backend and the two TTL classes
type CacheConfiguration struct {
	Backend      string
	LiveTTL      time.Duration
	ReferenceTTL time.Duration
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr          string
	Password      string
	DB            int
	DialTimeout   time.Duration
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	PoolSize      int
	PoolTimeout   time.Duration
	EncryptionKey string
}

// SourcesConfiguration describes the upstream sports data providers
type SourcesConfiguration struct {
	Timeout    time.Duration
	ESPN       ESPNConfiguration
	SportsData SportsDataConfiguration
	Plan       map[string][]string
}

type ESPNConfiguration struct {
	BaseURL string
}

type SportsDataConfiguration struct {
	BaseURL          string
	APIKey           string
	Season           int
	HistoricalSeason int
}

// PaymentsConfiguration selects the payment provider and the transaction store
type PaymentsConfiguration struct {
	Provider    string
	Store       string
	SettleAfter time.Duration
	Coinbase    CoinbaseConfiguration
}

type CoinbaseConfiguration struct {
	BaseURL string
	APIKey  string
}

type SQLConfiguration struct {
	Driver string
	DSN    string
}

// Neo4jConfiguration stores data for the graph transaction store
type Neo4jConfiguration struct {
	URI      string
	Username string
	Password string
}

type AuditConfiguration struct {
	Backend string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL string
}

var config *Configuration

func InitConfig() error {
	viper.AddConfigPath("config")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("score")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	SetDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	return viper.Unmarshal(&config)
}

// SetDefaults registers every default value. Exposed so tests can load defaults
// without a config file.
func SetDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.rateLimit", 100)
	viper.SetDefault("server.rateLimitWindow", "1m")
	viper.SetDefault("server.trustedProxies", []string{})
	viper.SetDefault("log.dir", "logging")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.console", false)

	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.liveTTL", "30s")
	viper.SetDefault("cache.referenceTTL", "1h")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dialTimeout", "5s")
	viper.SetDefault("redis.readTimeout", "3s")
	viper.SetDefault("redis.writeTimeout", "3s")
	viper.SetDefault("redis.poolSize", 20)
	viper.SetDefault("redis.poolTimeout", "4s")

	viper.SetDefault("sources.timeout", "10s")
	viper.SetDefault("sources.espn.baseURL", "https://site.api.espn.com/apis/site/v2/sports/football/nfl")
	viper.SetDefault("sources.sportsdata.baseURL", "https://api.sportsdata.io/v2/json")
	viper.SetDefault("sources.sportsdata.season", 2024)
	viper.SetDefault("sources.sportsdata.historicalSeason", 2023)

	viper.SetDefault("payments.provider", "simulated")
	viper.SetDefault("payments.store", "memory")
	viper.SetDefault("payments.settleAfter", "2s")
	viper.SetDefault("payments.coinbase.baseURL", "https://api.commerce.coinbase.com")

	viper.SetDefault("sql.driver", "sqlite")
	viper.SetDefault("sql.dsn", "file:farrowscore.db?cache=shared")

	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")

	viper.SetDefault("audit.backend", "log")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt retrieves an integer value from the configuration
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool retrieves a boolean value from the configuration
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration retrieves a duration value from the configuration
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetStringSlice retrieves a list value from the configuration
func GetStringSlice(key string) []string {
	return viper.GetStringSlice(key)
}
