package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lolstats/api/middleware"
	"lolstats/api/modules"
	"lolstats/api/routes"
	"lolstats/pkg/champion"
	"lolstats/pkg/config"
	"lolstats/pkg/database"
	"lolstats/pkg/events"
	"lolstats/pkg/logger"
	"lolstats/pkg/redis"
	"lolstats/pkg/riot"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	// Load the environment variables if not running on Docker.
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			fmt.Fprintln(os.Stderr, "no .env file loaded:", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "couldn't initialize the configuration:", err)
		os.Exit(1)
	}

	log, archive, err := logger.Setup(cfg)
	if err != nil {
		log.Warn().Err(err).Msg("log archive disabled")
	}

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("api stopped")
		uploadLogs(archive, log)
		os.Exit(1)
	}

	uploadLogs(archive, log)
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.Database.URL)
	if err != nil {
		return err
	}

	if cfg.Database.MigrationsEnabled {
		if err := database.Migrate(db); err != nil {
			return err
		}
	}

	var redisClient *redis.RedisClient
	if cfg.Redis.Enabled() {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	champions := loadChampions(ctx, cfg, redisClient, log)

	bus, err := connectEvents(cfg, log)
	if err != nil {
		return err
	}
	defer bus.Close()

	module := modules.NewModule(&modules.ModuleDependencies{
		Config:     cfg,
		DB:         db,
		Redis:      redisClient,
		RiotClient: riot.NewClientFromConfig(cfg.Riot),
		Champions:  champions,
		Events:     bus,
		Logger:     log,
	})
	defer module.Close()

	// Queued crawl requests are synced by every api instance.
	if bus.Enabled() {
		sub, err := bus.SubscribeSyncRequests(module.CrawlService.HandleSyncRequest)
		if err != nil {
			return err
		}
		defer sub.Unsubscribe()
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewRateLimiter(cfg.Api.RateLimit, cfg.Api.RateBurst)
	defer limiter.Stop()

	router := routes.NewRouter(routes.NewEngine(routes.EngineOptions{
		Logger:      log,
		RateLimiter: limiter,
		Origins:     cfg.Api.CorsOrigins,
	}))
	router.SetupRoutes(module.Handlers()...)

	log.Info().Str("port", cfg.Api.Port).Int("champions", champions.Len()).Msg("starting the api")
	return router.Run(ctx, ":"+cfg.Api.Port)
}

// loadChampions builds the champion table, falling back to the redis snapshot.
// Without both the api still starts and every champion resolves to Unknown.
func loadChampions(ctx context.Context, cfg *config.Config, redisClient *redis.RedisClient, log zerolog.Logger) *champion.Table {
	loaderDeps := &champion.LoaderDeps{
		BaseURL:  cfg.Assets.BaseURL,
		Language: cfg.Assets.Language,
		Logger:   log,
	}
	if redisClient != nil {
		loaderDeps.Snapshot = redisClient
	}

	table, err := champion.NewLoader(loaderDeps).Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("couldn't load the champion table")
		return champion.NewTable("", nil)
	}

	return table
}

func connectEvents(cfg *config.Config, log zerolog.Logger) (*events.Bus, error) {
	if cfg.Nats.URL == "" {
		return nil, nil
	}
	return events.Connect(cfg.Nats.URL, "lolstats-api", log)
}

func uploadLogs(archive *logger.Archive, log zerolog.Logger) {
	if archive == nil {
		return
	}
	defer archive.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	key := fmt.Sprintf("api/%s.log", time.Now().UTC().Format("2006-01-02T15-04-05"))
	if err := archive.UploadToS3Bucket(ctx, key); err != nil {
		log.Error().Err(err).Msg("couldn't upload the logs")
	}
}
