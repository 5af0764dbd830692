// Package syncservice brings the stored snapshot of a player up to date with the Riot API.
package syncservice

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"lolstats/api/repositories"
	"lolstats/pkg/champion"
	"lolstats/pkg/database/models"
	"lolstats/pkg/events"
	"lolstats/pkg/logger"
	"lolstats/pkg/metrics"
	"lolstats/pkg/riot"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// Max match details fetched by a single sync, the rest waits for the next ones.
	MaxNewMatches = 5

	DefaultCooldown = 30 * time.Second

	// Upper bound of a shared sync cycle, it no longer follows the callers' contexts.
	DefaultTimeout = 2 * time.Minute

	lockPrefix = "sync_player"
)

// UpstreamClient is the part of the Riot API client used by the sync.
type UpstreamClient interface {
	GetAccountByRiotId(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	GetAccountByPuuid(ctx context.Context, puuid string) (*riot.Account, error)
	GetSummonerByPuuid(ctx context.Context, puuid string) (*riot.Summoner, error)
	GetLeagueEntries(ctx context.Context, summonerId string) ([]riot.LeagueEntry, error)
	GetChampionMasteries(ctx context.Context, puuid string) ([]riot.ChampionMastery, error)
	GetMatchIds(ctx context.Context, puuid string, page int) ([]string, error)
	GetMatch(ctx context.Context, matchId string) (*riot.Match, error)
}

// ChampionLookup resolves champion ids to the reference data.
type ChampionLookup interface {
	LookupId(championId int) (champion.Champion, bool)
}

// SyncRedisClient is the redis client used for the cooldown lock.
type SyncRedisClient interface {
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// EventPublisher notifies other processes of finished syncs.
type EventPublisher interface {
	PublishSyncCompleted(event events.SyncCompleted) error
}

// SyncService runs sync cycles.
type SyncService struct {
	client    UpstreamClient
	users     repositories.UserRepository
	matches   repositories.MatchRepository
	champions ChampionLookup
	redis     SyncRedisClient
	events    EventPublisher
	cooldown  time.Duration
	timeout   time.Duration
	logger    zerolog.Logger

	group singleflight.Group
}

// SyncServiceDeps is the dependency list for the sync service.
// Redis and Events are optional.
type SyncServiceDeps struct {
	Client    UpstreamClient
	Users     repositories.UserRepository
	Matches   repositories.MatchRepository
	Champions ChampionLookup
	Redis     SyncRedisClient
	Events    EventPublisher
	Cooldown  time.Duration
	Timeout   time.Duration
	Logger    zerolog.Logger
}

// NewSyncService creates the sync service.
func NewSyncService(deps *SyncServiceDeps) *SyncService {
	cooldown := deps.Cooldown
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	timeout := deps.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &SyncService{
		client:    deps.Client,
		users:     deps.Users,
		matches:   deps.Matches,
		champions: deps.Champions,
		redis:     deps.Redis,
		events:    deps.Events,
		cooldown:  cooldown,
		timeout:   timeout,
		logger:    deps.Logger,
	}
}

// Sync brings the stored user and matches of a player up to date.
// Nothing is written when a required upstream call fails.
// Concurrent syncs of the same player share a single cycle, which runs detached from the
// callers: a caller that goes away only stops waiting. The cycle keeps the values (logger,
// upstream priority) of the caller that started it.
func (s *SyncService) Sync(ctx context.Context, identity Identity) (*models.User, error) {
	if err := identity.Validate(); err != nil {
		return nil, err
	}

	account, err := s.resolveAccount(ctx, identity)
	if err != nil {
		metrics.SyncRuns.WithLabelValues("failed").Inc()
		return nil, err
	}

	flight := s.group.DoChan(account.Puuid, func() (any, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()

		acquired, err := s.acquireCooldown(flightCtx, account.Puuid)
		if err != nil {
			return nil, err
		}

		user, err := s.run(flightCtx, account)
		if err != nil && acquired {
			s.releaseCooldown(flightCtx, account.Puuid)
		}
		return user, err
	})

	var result any
	select {
	case res := <-flight:
		result, err = res.Val, res.Err
	case <-ctx.Done():
		result, err = nil, ctx.Err()
	}
	if err != nil {
		outcome := "failed"
		if errors.Is(err, ErrSyncInProgress) {
			outcome = "rejected"
		}
		metrics.SyncRuns.WithLabelValues(outcome).Inc()
		return nil, err
	}

	metrics.SyncRuns.WithLabelValues("succeeded").Inc()
	return result.(*models.User), nil
}

// resolveAccount maps the identity to the account, failing fast.
func (s *SyncService) resolveAccount(ctx context.Context, identity Identity) (*riot.Account, error) {
	var (
		account *riot.Account
		err     error
	)
	if identity.Puuid != "" {
		account, err = s.client.GetAccountByPuuid(ctx, identity.Puuid)
	} else {
		account, err = s.client.GetAccountByRiotId(ctx, identity.GameName, identity.TagLine)
	}
	if err != nil {
		return nil, fmt.Errorf("couldn't resolve the account of %s: %w", identity, err)
	}

	return account, nil
}

// upstreamSnapshot is everything fetched before the delta is computed.
type upstreamSnapshot struct {
	summoner  *riot.Summoner
	leagues   []riot.LeagueEntry
	matchIds  []string
	masteries []riot.ChampionMastery
}

// fetchSnapshot gets the summoner, leagues, match ids and masteries.
// Leagues wait for the summoner id, the other calls run alongside.
func (s *SyncService) fetchSnapshot(ctx context.Context, puuid string) (*upstreamSnapshot, error) {
	snapshot := &upstreamSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		summoner, err := s.client.GetSummonerByPuuid(gctx, puuid)
		if err != nil {
			return fmt.Errorf("couldn't get the summoner: %w", err)
		}
		snapshot.summoner = summoner

		leagues, err := s.client.GetLeagueEntries(gctx, summoner.Id)
		if err != nil {
			return fmt.Errorf("couldn't get the leagues: %w", err)
		}
		snapshot.leagues = leagues
		return nil
	})

	g.Go(func() error {
		ids, err := s.client.GetMatchIds(gctx, puuid, 1)
		if err != nil {
			return fmt.Errorf("couldn't get the match ids: %w", err)
		}
		snapshot.matchIds = ids
		return nil
	})

	g.Go(func() error {
		masteries, err := s.client.GetChampionMasteries(gctx, puuid)
		if err != nil {
			return fmt.Errorf("couldn't get the masteries: %w", err)
		}
		snapshot.masteries = masteries
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// run is one sync cycle for a resolved account.
func (s *SyncService) run(ctx context.Context, account *riot.Account) (*models.User, error) {
	log := logger.Ctx(ctx, s.logger).With().Str("puuid", account.Puuid).Logger()

	snapshot, err := s.fetchSnapshot(ctx, account.Puuid)
	if err != nil {
		return nil, err
	}

	missing, err := s.MissingMatchIds(ctx, snapshot.matchIds)
	if err != nil {
		return nil, err
	}

	if len(missing) > MaxNewMatches {
		missing = missing[:MaxNewMatches]
	}

	fetched := make([]*models.Match, 0, len(missing))
	for _, result := range FetchMatches(ctx, s.client, missing) {
		if result.Err != nil {
			metrics.SyncMatchFailures.Inc()
			log.Warn().Err(result.Err).Str("match_id", result.Id).Msg("dropping match, couldn't fetch its detail")
			continue
		}
		fetched = append(fetched, models.NewMatch(result.Value))
	}

	user := s.mergeUser(account, snapshot)
	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, err
	}

	written, err := s.matches.UpsertMany(ctx, fetched)
	metrics.SyncMatchesFetched.Add(float64(written))
	if err != nil {
		return nil, fmt.Errorf("stored %d of %d matches: %w", written, len(fetched), err)
	}

	newIds := make([]string, len(fetched))
	for i, m := range fetched {
		newIds[i] = m.MatchId
	}

	log.Info().
		Int("known_matches", len(snapshot.matchIds)-len(missing)).
		Strs("new_matches", newIds).
		Msg("player synced")

	if s.events != nil {
		event := events.SyncCompleted{
			Puuid:      account.Puuid,
			NewMatches: len(newIds),
			MatchIds:   newIds,
			SyncedAt:   time.Now().UTC(),
		}
		if err := s.events.PublishSyncCompleted(event); err != nil {
			log.Warn().Err(err).Msg("couldn't publish the sync event")
		}
	}

	return user, nil
}

// MissingMatchIds returns the ids without a usable stored match, in the given order.
func (s *SyncService) MissingMatchIds(ctx context.Context, ids []string) ([]string, error) {
	missing := []string{}
	for _, id := range ids {
		stored, err := s.matches.FindByMatchId(ctx, id)
		if err != nil {
			return nil, err
		}
		if stored == nil || !stored.Riot().HasMetadata() {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// mergeUser builds the full user record from the upstream snapshot.
func (s *SyncService) mergeUser(account *riot.Account, snapshot *upstreamSnapshot) *models.User {
	summoner := snapshot.summoner

	user := &models.User{
		Puuid:         account.Puuid,
		GameName:      account.GameName,
		TagLine:       account.TagLine,
		AccountId:     summoner.AccountId,
		SummonerId:    summoner.Id,
		ProfileIconId: summoner.ProfileIconId,
		RevisionDate:  summoner.RevisionDate,
		SummonerLevel: summoner.SummonerLevel,
		Leagues:       snapshot.leagues,
		Masteries:     RemapMasteries(s.champions, snapshot.masteries),
		Matches:       snapshot.matchIds,
	}
	user.Normalize()

	return user
}

// RemapMasteries attaches the champion reference data to each mastery.
// Unknown champions get placeholder values.
func RemapMasteries(champions ChampionLookup, masteries []riot.ChampionMastery) []models.Mastery {
	remapped := make([]models.Mastery, len(masteries))
	for i, m := range masteries {
		c := champion.Champion{Id: champion.Unknown, Name: champion.Unknown, Title: champion.Unknown}
		if champions != nil {
			if found, ok := champions.LookupId(m.ChampionId); ok {
				c = found
			}
		}

		remapped[i] = models.Mastery{
			Key:            m.ChampionId,
			Id:             c.Id,
			Name:           c.Name,
			Title:          c.Title,
			ChampionLevel:  m.ChampionLevel,
			ChampionPoints: m.ChampionPoints,
			LastPlayTime:   m.LastPlayTime,
		}
	}
	return remapped
}

// createSyncLockKey generates a consistent hash-based key for the cooldown lock.
func createSyncLockKey(puuid string) string {
	hasher := sha256.New()
	hasher.Write([]byte(strings.ToLower(puuid)))
	return fmt.Sprintf("%s:%s", lockPrefix, hex.EncodeToString(hasher.Sum(nil)))
}

// acquireCooldown takes the cross-process lock of a player and tells if it was taken.
// A successful sync keeps the lock until the cooldown expires, a failed one releases it.
// Without redis, or when redis fails, the sync goes on.
func (s *SyncService) acquireCooldown(ctx context.Context, puuid string) (bool, error) {
	if s.redis == nil {
		return false, nil
	}

	redisCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	key := createSyncLockKey(puuid)
	lockAcquired, err := s.redis.SetNX(redisCtx, key, "processing", s.cooldown).Result()
	if err != nil {
		logger.Ctx(ctx, s.logger).Warn().Err(err).Msg("couldn't check the sync cooldown on redis")
		return false, nil
	}

	if lockAcquired {
		return true, nil
	}

	ttl, err := s.redis.TTL(redisCtx, key).Result()
	if err != nil || ttl <= 0 {
		// -1 is a key without expiration and -2 a key that expired since SetNX.
		return false, &InProgressError{RetryAfter: s.cooldown}
	}

	return false, &InProgressError{RetryAfter: ttl}
}

// releaseCooldown drops the lock so a failed sync can be retried right away.
func (s *SyncService) releaseCooldown(ctx context.Context, puuid string) {
	redisCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	if err := s.redis.Del(redisCtx, createSyncLockKey(puuid)).Err(); err != nil {
		logger.Ctx(ctx, s.logger).Warn().Err(err).Str("puuid", puuid).Msg("couldn't release the sync cooldown")
	}
}
