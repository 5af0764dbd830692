package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lolstats/api/repositories"
	championstatsservice "lolstats/api/services/championstats"
	crawlservice "lolstats/api/services/crawl"
	syncservice "lolstats/api/services/sync"
	"lolstats/pkg/champion"
	"lolstats/pkg/config"
	"lolstats/pkg/database"
	"lolstats/pkg/events"
	"lolstats/pkg/logger"
	"lolstats/pkg/redis"
	"lolstats/pkg/riot"
	"lolstats/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
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
	if archive != nil {
		defer archive.Close()
	}

	if err := run(cfg, log, archive); err != nil {
		log.Error().Err(err).Msg("scheduler stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger, archive *logger.Archive) error {
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

	loaderDeps := &champion.LoaderDeps{
		BaseURL:  cfg.Assets.BaseURL,
		Language: cfg.Assets.Language,
		Logger:   log,
	}
	var redisClient *redis.RedisClient
	if cfg.Redis.Enabled() {
		redisClient, err = redis.NewClient(cfg.Redis)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		loaderDeps.Snapshot = redisClient
	}
	loader := champion.NewLoader(loaderDeps)

	champions, err := loader.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("couldn't load the champion table")
		champions = champion.NewTable("", nil)
	}

	bus, err := connectEvents(cfg, log)
	if err != nil {
		return err
	}
	defer bus.Close()

	matchRepository := repositories.NewMatchRepository(db)

	// Only used when no queue is configured, the api workers sync queued players otherwise.
	syncDeps := &syncservice.SyncServiceDeps{
		Client:    riot.NewClientFromConfig(cfg.Riot),
		Users:     repositories.NewUserRepository(db),
		Matches:   matchRepository,
		Champions: champions,
		Cooldown:  cfg.Sync.Cooldown,
		Logger:    log,
	}
	crawlDeps := &crawlservice.CrawlServiceDeps{
		Syncer: syncservice.NewSyncService(syncDeps),
		Source: matchRepository,
		Batch:  cfg.Sync.CrawlBatch,
		Logger: log,
	}
	if redisClient != nil {
		syncDeps.Redis = redisClient
	}
	if bus.Enabled() {
		syncDeps.Events = bus
		crawlDeps.Publisher = bus
	}

	jobsDeps := &jobs.JobsDeps{
		Crawler: crawlservice.NewCrawlService(crawlDeps),
		Stats: championstatsservice.NewChampionStatsService(&championstatsservice.ChampionStatsServiceDeps{
			Repository: repositories.NewChampionStatsRepository(db),
			Champions:  champions,
			Logger:     log,
		}),
		Logger: log,
	}
	if redisClient != nil {
		jobsDeps.Champions = loader
	}
	if archive != nil {
		jobsDeps.Logs = archive
	}
	j := jobs.NewJobs(jobsDeps)

	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	if err := registerJobs(s, cfg, j); err != nil {
		return err
	}

	log.Info().Dur("crawl_interval", cfg.Sync.CrawlInterval).Msg("starting scheduler")
	s.Start()

	<-ctx.Done()
	log.Info().Msg("shutting down scheduler")

	if err := s.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error shutting down scheduler")
	}

	// Last logs of the run, failures are already logged by the job.
	_ = j.UploadLogs(context.Background())
	return nil
}

func registerJobs(s gocron.Scheduler, cfg *config.Config, j *jobs.Jobs) error {
	_, err := s.NewJob(
		gocron.DurationJob(cfg.Sync.CrawlInterval),
		gocron.NewTask(j.Crawl),
		gocron.WithName("participant-crawl"),
		gocron.WithTags("sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create crawl job: %w", err)
	}

	// Recalculate the champion stats - once per day at 3:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(j.RecalculateChampionStats),
		gocron.WithName("champion-stats-recalculation"),
		gocron.WithTags("stats"),
		gocron.JobOption(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to create champion stats job: %w", err)
	}

	// Refresh the champion snapshot - once per day at 4:00 AM.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(4, 0, 0),
			),
		),
		gocron.NewTask(j.RefreshChampionSnapshot),
		gocron.WithName("champion-snapshot-refresh"),
		gocron.WithTags("cache"),
	)
	if err != nil {
		return fmt.Errorf("failed to create champion snapshot job: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(j.UploadLogs),
		gocron.WithName("log-archive"),
		gocron.WithTags("logs"),
	)
	if err != nil {
		return fmt.Errorf("failed to create log archive job: %w", err)
	}

	return nil
}

func connectEvents(cfg *config.Config, log zerolog.Logger) (*events.Bus, error) {
	if cfg.Nats.URL == "" {
		return nil, nil
	}
	return events.Connect(cfg.Nats.URL, "lolstats-scheduler", log)
}
