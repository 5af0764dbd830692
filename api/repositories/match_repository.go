package repositories

import (
	"context"
	"encoding/json"
	"errors"

	"lolstats/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Max number of matches returned by List.
const MaxListedMatches = 100

// MatchRepository is the public interface for accessing the stored matches.
type MatchRepository interface {
	FindByMatchId(ctx context.Context, matchId string) (*models.Match, error)
	FindByParticipant(ctx context.Context, puuid string) ([]models.Match, error)
	List(ctx context.Context, limit int) ([]models.Match, error)
	Upsert(ctx context.Context, match *models.Match) error
	UpsertMany(ctx context.Context, matches []*models.Match) (int, error)
	ParticipantPuuids(ctx context.Context, limit int) ([]string, error)
}

// matchRepository repository structure.
type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a match repository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// FindByMatchId returns the stored match, nil without error when absent.
func (r *matchRepository) FindByMatchId(ctx context.Context, matchId string) (*models.Match, error) {
	var match models.Match
	err := r.db.WithContext(ctx).Where("match_id = ?", matchId).First(&match).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("find match", err)
	}

	return &match, nil
}

// FindByParticipant returns every match the player took part in, newest game first.
func (r *matchRepository) FindByParticipant(ctx context.Context, puuid string) ([]models.Match, error) {
	// The containment operator needs a JSON array on the right side.
	participant, err := json.Marshal([]string{puuid})
	if err != nil {
		return nil, err
	}

	matches := []models.Match{}
	err = r.db.WithContext(ctx).
		Where("metadata -> 'participants' @> ?::jsonb", string(participant)).
		Order("game_creation DESC").
		Find(&matches).Error
	if err != nil {
		return nil, storageError("find matches by participant", err)
	}

	return matches, nil
}

// List returns the most recently stored matches.
func (r *matchRepository) List(ctx context.Context, limit int) ([]models.Match, error) {
	if limit <= 0 || limit > MaxListedMatches {
		limit = MaxListedMatches
	}

	matches := []models.Match{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&matches).Error
	if err != nil {
		return nil, storageError("list matches", err)
	}

	return matches, nil
}

// Upsert inserts the match or replaces the stored one with the same id.
func (r *matchRepository) Upsert(ctx context.Context, match *models.Match) error {
	if match.Metadata.Participants == nil {
		match.Metadata.Participants = []string{}
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"metadata", "info", "game_creation"}),
		}).
		Create(match).Error
	if err != nil {
		return storageError("upsert match", err)
	}

	return nil
}

// UpsertMany writes each match independently, there is no transaction.
// Returns how many were written and every error joined.
func (r *matchRepository) UpsertMany(ctx context.Context, matches []*models.Match) (int, error) {
	written := 0
	var errs []error
	for _, match := range matches {
		if err := r.Upsert(ctx, match); err != nil {
			errs = append(errs, err)
			continue
		}
		written++
	}

	return written, errors.Join(errs...)
}

// ParticipantPuuids returns distinct players found in stored matches, in random order.
func (r *matchRepository) ParticipantPuuids(ctx context.Context, limit int) ([]string, error) {
	query := `
		SELECT puuid FROM (
			SELECT DISTINCT jsonb_array_elements_text(metadata -> 'participants') AS puuid
			FROM matches
			WHERE jsonb_typeof(metadata -> 'participants') = 'array'
		) participants
		WHERE puuid <> ''
		ORDER BY random()
		LIMIT ?`

	puuids := []string{}
	if err := r.db.WithContext(ctx).Raw(query, limit).Scan(&puuids).Error; err != nil {
		return nil, storageError("list participants", err)
	}

	return puuids, nil
}
