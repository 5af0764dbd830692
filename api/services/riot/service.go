package riotservice

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lolstats/api/cache"
	"lolstats/api/services"
	"lolstats/pkg/logger"
	"lolstats/pkg/metrics"
	"lolstats/pkg/riot"

	"github.com/rs/zerolog"
)

const (
	DefaultCacheTTL    = 2 * time.Minute
	DefaultReadTimeout = 5 * time.Second
)

// RiotClient is the part of the Riot API client used by the proxy.
type RiotClient interface {
	GetAccountByRiotId(ctx context.Context, gameName, tagLine string) (*riot.Account, error)
	GetAccountByPuuid(ctx context.Context, puuid string) (*riot.Account, error)
	GetSummonerByPuuid(ctx context.Context, puuid string) (*riot.Summoner, error)
	GetLeagueEntries(ctx context.Context, summonerId string) ([]riot.LeagueEntry, error)
	GetChampionMasteries(ctx context.Context, puuid string) ([]riot.ChampionMastery, error)
	GetMatchIds(ctx context.Context, puuid string, page int) ([]string, error)
	GetMatch(ctx context.Context, matchId string) (*riot.Match, error)
}

// Caches holds one cache per payload kind. A nil cache disables caching for its kind.
type Caches struct {
	Accounts  cache.Cache[*riot.Account]
	Summoners cache.Cache[*riot.Summoner]
	Leagues   cache.Cache[[]riot.LeagueEntry]
	Masteries cache.Cache[[]riot.ChampionMastery]
	MatchIds  cache.Cache[[]string]
	Matches   cache.Cache[*riot.Match]
}

// RiotService proxies the Riot API with a read-through cache and a fixed timeout.
type RiotService struct {
	client  RiotClient
	caches  Caches
	ttl     time.Duration
	timeout time.Duration
	logger  zerolog.Logger
}

// RiotServiceDeps is the dependency list for the riot service.
type RiotServiceDeps struct {
	Client      RiotClient
	Caches      Caches
	CacheTTL    time.Duration
	ReadTimeout time.Duration
	Logger      zerolog.Logger
}

// NewRiotService creates the proxy service.
func NewRiotService(deps *RiotServiceDeps) *RiotService {
	ttl := deps.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	timeout := deps.ReadTimeout
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}

	return &RiotService{
		client:  deps.Client,
		caches:  deps.Caches,
		ttl:     ttl,
		timeout: timeout,
		logger:  deps.Logger,
	}
}

// readThrough answers from the cache or calls fetch under the read timeout.
// Cache failures are logged and treated as misses.
func readThrough[T any](
	ctx context.Context,
	rs *RiotService,
	c cache.Cache[T],
	kind, key string,
	fetch func(ctx context.Context) (T, error),
) (T, error) {
	log := logger.Ctx(ctx, rs.logger)

	if c != nil {
		value, found, err := c.Get(ctx, key)
		switch {
		case err != nil:
			metrics.CacheLookups.WithLabelValues(kind, "error").Inc()
			log.Warn().Err(err).Str("kind", kind).Msg("cache read failed")
		case found:
			metrics.CacheLookups.WithLabelValues(kind, "hit").Inc()
			return value, nil
		default:
			metrics.CacheLookups.WithLabelValues(kind, "miss").Inc()
		}
	}

	fetchCtx, cancel := context.WithTimeout(ctx, rs.timeout)
	defer cancel()

	value, err := fetch(fetchCtx)
	if err != nil {
		var zero T
		if ctx.Err() == nil && errors.Is(fetchCtx.Err(), context.DeadlineExceeded) {
			return zero, fmt.Errorf("%w: %s lookup took more than %s", services.ErrTimeout, kind, rs.timeout)
		}
		return zero, err
	}

	if c != nil {
		if err := c.Set(ctx, key, value, rs.ttl); err != nil {
			log.Warn().Err(err).Str("kind", kind).Msg("cache write failed")
		}
	}

	return value, nil
}

// GetAccountByRiotId resolves an account by game name and tag line.
func (rs *RiotService) GetAccountByRiotId(ctx context.Context, gameName, tagLine string) (*riot.Account, error) {
	key := strings.ToLower(gameName) + "#" + strings.ToLower(tagLine)
	return readThrough(ctx, rs, rs.caches.Accounts, "account", key, func(ctx context.Context) (*riot.Account, error) {
		return rs.client.GetAccountByRiotId(ctx, gameName, tagLine)
	})
}

// GetAccountByPuuid resolves an account by puuid.
func (rs *RiotService) GetAccountByPuuid(ctx context.Context, puuid string) (*riot.Account, error) {
	return readThrough(ctx, rs, rs.caches.Accounts, "account", "puuid:"+puuid, func(ctx context.Context) (*riot.Account, error) {
		return rs.client.GetAccountByPuuid(ctx, puuid)
	})
}

// GetSummoner returns the summoner of a player.
func (rs *RiotService) GetSummoner(ctx context.Context, puuid string) (*riot.Summoner, error) {
	return readThrough(ctx, rs, rs.caches.Summoners, "summoner", puuid, func(ctx context.Context) (*riot.Summoner, error) {
		return rs.client.GetSummonerByPuuid(ctx, puuid)
	})
}

// GetLeagueEntries returns the ranked standings of a summoner.
func (rs *RiotService) GetLeagueEntries(ctx context.Context, summonerId string) ([]riot.LeagueEntry, error) {
	return readThrough(ctx, rs, rs.caches.Leagues, "league", summonerId, func(ctx context.Context) ([]riot.LeagueEntry, error) {
		return rs.client.GetLeagueEntries(ctx, summonerId)
	})
}

// GetChampionMasteries returns the champion masteries of a player.
func (rs *RiotService) GetChampionMasteries(ctx context.Context, puuid string) ([]riot.ChampionMastery, error) {
	return readThrough(ctx, rs, rs.caches.Masteries, "mastery", puuid, func(ctx context.Context) ([]riot.ChampionMastery, error) {
		return rs.client.GetChampionMasteries(ctx, puuid)
	})
}

// GetMatchIds returns one page of match ids of a player.
func (rs *RiotService) GetMatchIds(ctx context.Context, puuid string, page int) ([]string, error) {
	key := puuid + ":" + strconv.Itoa(page)
	return readThrough(ctx, rs, rs.caches.MatchIds, "match-ids", key, func(ctx context.Context) ([]string, error) {
		return rs.client.GetMatchIds(ctx, puuid, page)
	})
}

// GetMatch returns the detail of a match.
func (rs *RiotService) GetMatch(ctx context.Context, matchId string) (*riot.Match, error) {
	return readThrough(ctx, rs, rs.caches.Matches, "match", matchId, func(ctx context.Context) (*riot.Match, error) {
		return rs.client.GetMatch(ctx, matchId)
	})
}
