package repositories

import (
	"context"
	"testing"

	"lolstats/api/repositories/testutil"
	"lolstats/pkg/database/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewUserRepository(t *testing.T) {
	repository := NewUserRepository(&gorm.DB{})
	assert.NotNil(t, repository)
}

func TestUserRepository(t *testing.T) {
	db := testutil.NewTestConnection(t)
	repository := NewUserRepository(db)
	ctx := context.Background()

	t.Run("absentuser", func(t *testing.T) {
		user, err := repository.FindByRiotId(ctx, "Nobody", "NONE")
		assert.NoError(t, err)
		assert.Nil(t, user)

		user, err = repository.FindByPuuid(ctx, "missing-puuid")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("idempotentupsert", func(t *testing.T) {
		user := newTestUser("puuid-karamelune", "Karamelune", "TEEMO")
		require.NoError(t, repository.Upsert(ctx, user))

		first, err := repository.FindByPuuid(ctx, "puuid-karamelune")
		require.NoError(t, err)

		require.NoError(t, repository.Upsert(ctx, newTestUser("puuid-karamelune", "Karamelune", "TEEMO")))

		second, err := repository.FindByPuuid(ctx, "puuid-karamelune")
		require.NoError(t, err)
		assert.Equal(t, first, second)

		var count int64
		db.Model(&models.User{}).Where("puuid = ?", "puuid-karamelune").Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("caseinsensitivelookup", func(t *testing.T) {
		user, err := repository.FindByRiotId(ctx, "karamelune", "teemo")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "puuid-karamelune", user.Puuid)
		assert.Equal(t, []string{"EUW1_3", "EUW1_2", "EUW1_1"}, user.Matches)
		assert.Equal(t, "Teemo", user.Masteries[0].Id)
	})

	t.Run("fullreplace", func(t *testing.T) {
		user := newTestUser("puuid-karamelune", "Karamelune", "TEEMO")
		user.Leagues = nil
		user.Matches = []string{"EUW1_4"}
		user.SummonerLevel = 313
		require.NoError(t, repository.Upsert(ctx, user))

		stored, err := repository.FindByPuuid(ctx, "puuid-karamelune")
		require.NoError(t, err)
		assert.Empty(t, stored.Leagues)
		assert.NotNil(t, stored.Leagues)
		assert.Equal(t, []string{"EUW1_4"}, stored.Matches)
		assert.Equal(t, int64(313), stored.SummonerLevel)
	})

	t.Run("closedconnection", func(t *testing.T) {
		closed := testutil.NewTestConnection(t)
		sqlDB, _ := closed.DB()
		sqlDB.Close()

		_, err := NewUserRepository(closed).FindByPuuid(ctx, "puuid")
		assert.ErrorIs(t, err, ErrStorageUnavailable)

		err = NewUserRepository(closed).Upsert(ctx, newTestUser("p", "a", "b"))
		assert.ErrorIs(t, err, ErrStorageUnavailable)
	})
}
