package implementation

import (
	"context"
	"path/filepath"
	"testing"

	"airport-assistant-be/internal/entity"
	"airport-assistant-be/internal/model"
	"airport-assistant-be/internal/repository/contract"
	"airport-assistant-be/pkg/kvstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheKeyStability(t *testing.T) {
	assert.Equal(t, CacheKey("Where is gate B12?"), CacheKey("Where is gate B12?"))
	assert.NotEqual(t, CacheKey("Where is gate B12?"), CacheKey("Where is gate B13?"))
	assert.NotEqual(t, CacheKey("lounge"), CacheKey("Lounge"))
	// md5("") is well known
	assert.Equal(t, "d41d8cd98f00b204e9800998ecf8427e", CacheKey(""))
}

func TestResponseCacheRepositoryPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "airport_cache.json")

	store, err := kvstore.Open[string](path)
	require.NoError(t, err)
	repo := NewResponseCacheRepository(store)

	_, found, err := repo.Get(ctx, "security at JFK")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, repo.Put(ctx, "security at JFK", "Allow 30 minutes."))

	reopened, err := kvstore.Open[string](path)
	require.NoError(t, err)
	answer, found, err := NewResponseCacheRepository(reopened).Get(ctx, "security at JFK")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Allow 30 minutes.", answer)

	v, ok := reopened.Get(CacheKey("security at JFK"))
	assert.True(t, ok)
	assert.Equal(t, "Allow 30 minutes.", v)
}

func TestUserRepositoryCreateIsUnique(t *testing.T) {
	ctx := context.Background()
	store, err := kvstore.Open[model.User](filepath.Join(t.TempDir(), "user_data.json"))
	require.NoError(t, err)
	repo := NewUserRepository(store)

	require.NoError(t, repo.Create(ctx, &entity.User{Username: "ana", Email: "a@x.com", PasswordHash: "h1"}))

	err = repo.Create(ctx, &entity.User{Username: "ana", Email: "other@x.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, contract.ErrUserExists)

	u, err := repo.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, "h1", u.PasswordHash)

	missing, err := repo.FindByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryUpdate(t *testing.T) {
	ctx := context.Background()
	store, err := kvstore.Open[model.User](filepath.Join(t.TempDir(), "user_data.json"))
	require.NoError(t, err)
	require.NoError(t, store.Set("ana", model.User{Email: "a@x.com", LegacyPassword: "abc123"}))
	repo := NewUserRepository(store)

	u, err := repo.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.NeedsRehash())

	u.PasswordHash = "bcrypt-hash"
	u.LegacyPasswordHash = ""
	require.NoError(t, repo.Update(ctx, u))

	stored, _ := store.Get("ana")
	assert.Equal(t, model.User{Email: "a@x.com", PasswordHash: "bcrypt-hash"}, stored)

	err = repo.Update(ctx, &entity.User{Username: "ghost", PasswordHash: "h"})
	assert.ErrorIs(t, err, contract.ErrUserNotFound)
	assert.Equal(t, 1, store.Len())
}
