package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Riot API configuration.
type RiotConfiguration struct {
	ApiKey       string
	RegionalHost string
	PlatformHost string
	Limits       LimitsConfiguration
}

// A single rate limit window.
type LimitConfiguration struct {
	Count         int
	ResetInterval time.Duration
}

// Both windows enforced by the Riot API for a development key.
type LimitsConfiguration struct {
	Lower  LimitConfiguration
	Higher LimitConfiguration
}

// Data Dragon assets configuration.
type AssetsConfiguration struct {
	BaseURL  string
	Language string
}

// Database configuration struct.
type DatabaseConfiguration struct {
	URL               string
	MigrationsEnabled bool
}

// Redis configuration struct.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// Enabled tells if a redis host was configured.
func (r RedisConfiguration) Enabled() bool {
	return r.Host != ""
}

// Addr is the host:port pair.
func (r RedisConfiguration) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return r.Host + ":" + port
}

// Cache configuration.
type CacheConfiguration struct {
	Backend     string
	TTL         time.Duration
	ReadTimeout time.Duration
}

// Sync configuration.
type SyncConfiguration struct {
	Cooldown      time.Duration
	CrawlInterval time.Duration
	CrawlBatch    int
}

// NATS configuration.
type NatsConfiguration struct {
	URL string
}

// API server configuration.
type ApiConfiguration struct {
	Port        string
	RateLimit   float64
	RateBurst   int
	CorsOrigins []string
}

// Logger configuration.
type LogConfiguration struct {
	Level  string
	Format string
}

// S3 compatible bucket used for log archiving.
type BucketConfiguration struct {
	Region       string
	Endpoint     string
	AccessKey    string
	AccessSecret string
	LogBucket    string
}

// Enabled tells if the archive bucket is fully configured.
func (b BucketConfiguration) Enabled() bool {
	return b.LogBucket != "" && b.AccessKey != "" && b.AccessSecret != ""
}

// Config is the full configuration of the application.
type Config struct {
	Environment string
	Riot        RiotConfiguration
	Assets      AssetsConfiguration
	Database    DatabaseConfiguration
	Redis       RedisConfiguration
	Cache       CacheConfiguration
	Sync        SyncConfiguration
	Nats        NatsConfiguration
	Api         ApiConfiguration
	Log         LogConfiguration
	Bucket      BucketConfiguration
}

// envReader collects the first parsing error so Load can report it.
type envReader struct {
	err error
}

func (r *envReader) str(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return d
}

func (r *envReader) integer(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return i
}

func (r *envReader) float(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return f
}

func (r *envReader) boolean(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, err)
		return fallback
	}
	return b
}

// list splits a comma separated value, dropping empty items.
func (r *envReader) list(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func (r *envReader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid value for %s: %w", key, err)
	}
}

// Load reads the configuration from the environment.
// The Riot API key and the database URL are mandatory.
func Load() (*Config, error) {
	r := &envReader{}

	cfg := &Config{
		Environment: r.str("ENVIRONMENT", "development"),
		Riot: RiotConfiguration{
			ApiKey:       r.str("RIOT_API_KEY", ""),
			RegionalHost: strings.ToLower(r.str("RIOT_REGIONAL_HOST", "europe")),
			PlatformHost: strings.ToLower(r.str("RIOT_PLATFORM_HOST", "euw1")),
			Limits: LimitsConfiguration{
				Lower: LimitConfiguration{
					Count:         r.integer("RIOT_LIMIT_SHORT_COUNT", 20),
					ResetInterval: r.duration("RIOT_LIMIT_SHORT_WINDOW", time.Second),
				},
				Higher: LimitConfiguration{
					Count:         r.integer("RIOT_LIMIT_LONG_COUNT", 100),
					ResetInterval: r.duration("RIOT_LIMIT_LONG_WINDOW", 2*time.Minute),
				},
			},
		},
		Assets: AssetsConfiguration{
			BaseURL:  r.str("DDRAGON_URL", "https://ddragon.leagueoflegends.com/"),
			Language: r.str("DDRAGON_LANGUAGE", "en_US"),
		},
		Database: DatabaseConfiguration{
			URL:               r.str("POSTGRES_URL", ""),
			MigrationsEnabled: r.boolean("MIGRATIONS_ENABLED", true),
		},
		Redis: RedisConfiguration{
			Host:     r.str("REDIS_HOST", ""),
			Port:     r.str("REDIS_PORT", "6379"),
			Password: r.str("REDIS_PASSWORD", ""),
		},
		Cache: CacheConfiguration{
			Backend:     strings.ToLower(r.str("CACHE_BACKEND", "memory")),
			TTL:         r.duration("CACHE_TTL", 2*time.Minute),
			ReadTimeout: r.duration("READ_TIMEOUT", 5*time.Second),
		},
		Sync: SyncConfiguration{
			Cooldown:      r.duration("SYNC_COOLDOWN", 30*time.Second),
			CrawlInterval: r.duration("CRAWL_INTERVAL", 30*time.Minute),
			CrawlBatch:    r.integer("CRAWL_BATCH", 50),
		},
		Nats: NatsConfiguration{
			URL: r.str("NATS_URL", ""),
		},
		Api: ApiConfiguration{
			Port:        r.str("API_PORT", "8080"),
			RateLimit:   r.float("API_RATE_LIMIT", 5),
			RateBurst:   r.integer("API_RATE_BURST", 20),
			CorsOrigins: r.list("API_CORS_ORIGINS"),
		},
		Log: LogConfiguration{
			Level:  strings.ToLower(r.str("LOG_LEVEL", "info")),
			Format: strings.ToLower(r.str("LOG_FORMAT", "json")),
		},
		Bucket: BucketConfiguration{
			Region:       r.str("BUCKET_REGION", "auto"),
			Endpoint:     r.str("BUCKET_ENDPOINT", ""),
			AccessKey:    r.str("BUCKET_ACCESS_KEY", ""),
			AccessSecret: r.str("BUCKET_ACCESS_SECRET", ""),
			LogBucket:    r.str("BUCKET_LOG_BUCKET", ""),
		},
	}

	if r.err != nil {
		return nil, r.err
	}

	if cfg.Riot.ApiKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY is not defined")
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is not defined")
	}

	if cfg.Cache.Backend != "memory" && cfg.Cache.Backend != "redis" {
		return nil, fmt.Errorf("invalid value for CACHE_BACKEND: %q", cfg.Cache.Backend)
	}

	if cfg.Cache.Backend == "redis" && !cfg.Redis.Enabled() {
		return nil, fmt.Errorf("CACHE_BACKEND=redis requires REDIS_HOST")
	}

	return cfg, nil
}
