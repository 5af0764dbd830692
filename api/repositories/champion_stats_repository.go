package repositories

import (
	"context"
	"errors"

	"lolstats/pkg/database/models"

	"gorm.io/gorm"
)

// ChampionStatsRepository is the public interface for the champion aggregate.
type ChampionStatsRepository interface {
	List(ctx context.Context) ([]models.ChampionStats, error)
	FindByKey(ctx context.Context, championKey int) (*models.ChampionStats, error)
	Recalculate(ctx context.Context) (int64, error)
}

// championStatsRepository repository structure.
type championStatsRepository struct {
	db *gorm.DB
}

// NewChampionStatsRepository creates a champion stats repository.
func NewChampionStatsRepository(db *gorm.DB) ChampionStatsRepository {
	return &championStatsRepository{db: db}
}

// List returns the stats of every champion, most played first.
func (r *championStatsRepository) List(ctx context.Context) ([]models.ChampionStats, error) {
	stats := []models.ChampionStats{}
	err := r.db.WithContext(ctx).
		Order("total_matches DESC, champion_key").
		Find(&stats).Error
	if err != nil {
		return nil, storageError("list champion stats", err)
	}

	return stats, nil
}

// FindByKey returns the stats of a champion, nil without error when absent.
func (r *championStatsRepository) FindByKey(ctx context.Context, championKey int) (*models.ChampionStats, error) {
	var stats models.ChampionStats
	err := r.db.WithContext(ctx).Where("champion_key = ?", championKey).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("find champion stats", err)
	}

	return &stats, nil
}

// Recalculate rebuilds the aggregate from every stored participation.
// Ranked games are the solo and flex queues, everything else is normal.
// Returns the number of champions written.
func (r *championStatsRepository) Recalculate(ctx context.Context) (int64, error) {
	query := `
		WITH participations AS (
			SELECT
				(p ->> 'championId')::int AS champion_key,
				p ->> 'championName' AS champion_id,
				CASE WHEN (p ->> 'win')::boolean THEN 1.0 ELSE 0.0 END AS win,
				(p ->> 'kills')::int AS kills,
				(p ->> 'deaths')::int AS deaths,
				(p ->> 'assists')::int AS assists,
				NULLIF(p ->> 'teamPosition', '') AS role,
				(m.info ->> 'queueId')::int IN (420, 440) AS ranked
			FROM matches m
			CROSS JOIN LATERAL jsonb_array_elements(
				CASE WHEN jsonb_typeof(m.info -> 'participants') = 'array'
					THEN m.info -> 'participants'
					ELSE '[]'::jsonb
				END
			) AS p
		)
		INSERT INTO champion_stats (
			champion_key, champion_id,
			total_matches, total_win_rate, total_average_kills, total_average_deaths, total_average_assists,
			ranked_matches, ranked_win_rate, ranked_average_kills, ranked_average_deaths, ranked_average_assists, ranked_most_played_role,
			normal_matches, normal_win_rate, normal_average_kills, normal_average_deaths, normal_average_assists,
			updated_at
		)
		SELECT
			champion_key,
			MAX(champion_id),
			COUNT(*),
			AVG(win) * 100,
			AVG(kills),
			AVG(deaths),
			AVG(assists),
			COUNT(*) FILTER (WHERE ranked),
			AVG(win) FILTER (WHERE ranked) * 100,
			AVG(kills) FILTER (WHERE ranked),
			AVG(deaths) FILTER (WHERE ranked),
			AVG(assists) FILTER (WHERE ranked),
			MODE() WITHIN GROUP (ORDER BY role) FILTER (WHERE ranked AND role IS NOT NULL),
			COUNT(*) FILTER (WHERE NOT ranked),
			AVG(win) FILTER (WHERE NOT ranked) * 100,
			AVG(kills) FILTER (WHERE NOT ranked),
			AVG(deaths) FILTER (WHERE NOT ranked),
			AVG(assists) FILTER (WHERE NOT ranked),
			NOW()
		FROM participations
		WHERE champion_key IS NOT NULL
		GROUP BY champion_key
		ON CONFLICT (champion_key) DO UPDATE SET
			champion_id = EXCLUDED.champion_id,
			total_matches = EXCLUDED.total_matches,
			total_win_rate = EXCLUDED.total_win_rate,
			total_average_kills = EXCLUDED.total_average_kills,
			total_average_deaths = EXCLUDED.total_average_deaths,
			total_average_assists = EXCLUDED.total_average_assists,
			ranked_matches = EXCLUDED.ranked_matches,
			ranked_win_rate = EXCLUDED.ranked_win_rate,
			ranked_average_kills = EXCLUDED.ranked_average_kills,
			ranked_average_deaths = EXCLUDED.ranked_average_deaths,
			ranked_average_assists = EXCLUDED.ranked_average_assists,
			ranked_most_played_role = EXCLUDED.ranked_most_played_role,
			normal_matches = EXCLUDED.normal_matches,
			normal_win_rate = EXCLUDED.normal_win_rate,
			normal_average_kills = EXCLUDED.normal_average_kills,
			normal_average_deaths = EXCLUDED.normal_average_deaths,
			normal_average_assists = EXCLUDED.normal_average_assists,
			updated_at = EXCLUDED.updated_at`

	result := r.db.WithContext(ctx).Exec(query)
	if result.Error != nil {
		return 0, storageError("recalculate champion stats", result.Error)
	}

	return result.RowsAffected, nil
}
