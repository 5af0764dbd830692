package repositories

import (
	"context"
	"errors"

	"lolstats/pkg/database/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository is the public interface for accessing the stored users.
type UserRepository interface {
	FindByRiotId(ctx context.Context, gameName, tagLine string) (*models.User, error)
	FindByPuuid(ctx context.Context, puuid string) (*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

// userRepository repository structure.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByRiotId finds a user by game name and tag line, ignoring case.
// Returns nil without error when there is no such user.
func (r *userRepository) FindByRiotId(ctx context.Context, gameName, tagLine string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(game_name) = LOWER(?) AND LOWER(tag_line) = LOWER(?)", gameName, tagLine).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("find user by riot id", err)
	}

	return &user, nil
}

// FindByPuuid finds a user by puuid.
// Returns nil without error when there is no such user.
func (r *userRepository) FindByPuuid(ctx context.Context, puuid string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("puuid = ?", puuid).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError("find user by puuid", err)
	}

	return &user, nil
}

// Upsert replaces the whole user row, inserting it when missing.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	user.Normalize()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "puuid"}},
			UpdateAll: true,
		}).
		Create(user).Error
	if err != nil {
		return storageError("upsert user", err)
	}

	return nil
}
