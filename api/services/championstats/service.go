package championstatsservice

import (
	"context"
	"errors"
	"strconv"
	"time"

	"lolstats/api/cache"
	"lolstats/api/dto"
	"lolstats/api/repositories"
	"lolstats/pkg/champion"
	"lolstats/pkg/database/models"

	"github.com/rs/zerolog"
)

const (
	listCacheKey      = "all"
	listCacheDuration = 15 * time.Minute
)

// ErrChampionNotFound is returned for a champion without stats.
var ErrChampionNotFound = errors.New("champion stats not found")

// ChampionTable resolves champion keys.
type ChampionTable interface {
	LookupOrUnknown(key string) champion.Champion
}

// ChampionStatsService reads the champion aggregate.
type ChampionStatsService struct {
	repository repositories.ChampionStatsRepository
	champions  ChampionTable
	cache      cache.Cache[[]dto.ChampionStats]
	logger     zerolog.Logger
}

// ChampionStatsServiceDeps is the dependency list of the service. Cache is optional.
type ChampionStatsServiceDeps struct {
	Repository repositories.ChampionStatsRepository
	Champions  ChampionTable
	Cache      cache.Cache[[]dto.ChampionStats]
	Logger     zerolog.Logger
}

// NewChampionStatsService creates the service.
func NewChampionStatsService(deps *ChampionStatsServiceDeps) *ChampionStatsService {
	return &ChampionStatsService{
		repository: deps.Repository,
		champions:  deps.Champions,
		cache:      deps.Cache,
		logger:     deps.Logger,
	}
}

// List returns the stats of every champion, most played first.
func (cs *ChampionStatsService) List(ctx context.Context) ([]dto.ChampionStats, error) {
	if cs.cache != nil {
		if cached, found, err := cs.cache.Get(ctx, listCacheKey); err == nil && found {
			return cached, nil
		}
	}

	stats, err := cs.repository.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ChampionStats, len(stats))
	for i := range stats {
		result[i] = cs.toDto(&stats[i])
	}

	if cs.cache != nil {
		if err := cs.cache.Set(ctx, listCacheKey, result, listCacheDuration); err != nil {
			cs.logger.Warn().Err(err).Msg("couldn't cache the champion stats")
		}
	}

	return result, nil
}

// Get returns the stats of one champion.
func (cs *ChampionStatsService) Get(ctx context.Context, championKey int) (*dto.ChampionStats, error) {
	stats, err := cs.repository.FindByKey(ctx, championKey)
	if err != nil {
		return nil, err
	}
	if stats == nil {
		return nil, ErrChampionNotFound
	}

	result := cs.toDto(stats)
	return &result, nil
}

// Recalculate rebuilds the aggregate from the stored matches.
func (cs *ChampionStatsService) Recalculate(ctx context.Context) (int64, error) {
	written, err := cs.repository.Recalculate(ctx)
	if err != nil {
		return 0, err
	}

	cs.logger.Info().Int64("champions", written).Msg("champion stats recalculated")
	return written, nil
}

// toDto nests the flat row by queue group.
func (cs *ChampionStatsService) toDto(stats *models.ChampionStats) dto.ChampionStats {
	result := dto.ChampionStats{
		ChampionKey: stats.ChampionKey,
		ChampionId:  stats.ChampionId,
		UpdatedAt:   stats.UpdatedAt,
		Stats: dto.ChampionStatsGroups{
			Total: dto.QueueStats{
				MatchesNumber:  stats.TotalMatches,
				AverageKills:   &stats.TotalAverageKills,
				AverageDeaths:  &stats.TotalAverageDeaths,
				AverageAssists: &stats.TotalAverageAssists,
				WinRate:        &stats.TotalWinRate,
			},
			Normal: dto.QueueStats{
				MatchesNumber:  stats.NormalMatches,
				AverageKills:   stats.NormalAverageKills,
				AverageDeaths:  stats.NormalAverageDeaths,
				AverageAssists: stats.NormalAverageAssists,
				WinRate:        stats.NormalWinRate,
			},
			Ranked: dto.RankedStats{
				QueueStats: dto.QueueStats{
					MatchesNumber:  stats.RankedMatches,
					AverageKills:   stats.RankedAverageKills,
					AverageDeaths:  stats.RankedAverageDeaths,
					AverageAssists: stats.RankedAverageAssists,
					WinRate:        stats.RankedWinRate,
				},
				MostPlayedRole: stats.RankedMostPlayedRole,
			},
		},
	}

	if cs.champions != nil {
		c := cs.champions.LookupOrUnknown(strconv.Itoa(stats.ChampionKey))
		if c.Id != champion.Unknown {
			result.ChampionId = c.Id
		}
		result.ChampionName = c.Name
		result.Title = c.Title
	}

	return result
}
