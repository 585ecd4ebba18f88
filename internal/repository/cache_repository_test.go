package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/courseconnect-api/pkg/errors"
)

type cachedPayload struct {
	Total int    `json:"total"`
	Label string `json:"label"`
}

func newMiniredisRepo(t *testing.T) (*CacheRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCacheRepository(client, "cc:", zap.NewNop()), mr
}

func TestCacheRepositoryRoundTrip(t *testing.T) {
	repo, mr := newMiniredisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "view:dashboard:u1:0", cachedPayload{Total: 3, Label: "Enrolled Courses"}, time.Minute))
	assert.True(t, mr.Exists("cc:view:dashboard:u1:0"))

	var got cachedPayload
	require.NoError(t, repo.Get(ctx, "view:dashboard:u1:0", &got))
	assert.Equal(t, cachedPayload{Total: 3, Label: "Enrolled Courses"}, got)

	mr.FastForward(2 * time.Minute)
	err := repo.Get(ctx, "view:dashboard:u1:0", &got)
	assert.ErrorIs(t, err, appErrors.ErrCacheMiss)
}

func TestCacheRepositoryDeleteByPattern(t *testing.T) {
	repo, mr := newMiniredisRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "view:dashboard:u1:1", cachedPayload{Total: 1}, time.Minute))
	require.NoError(t, repo.Set(ctx, "view:dashboard:u3:1", cachedPayload{Total: 2}, time.Minute))
	require.NoError(t, mr.Set("other:key", "keep"))

	require.NoError(t, repo.DeleteByPattern(ctx, "view:*"))

	assert.False(t, mr.Exists("cc:view:dashboard:u1:1"))
	assert.False(t, mr.Exists("cc:view:dashboard:u3:1"))
	assert.True(t, mr.Exists("other:key"))
}

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "cc:", nil)
	ctx := context.Background()

	var got cachedPayload
	assert.ErrorIs(t, repo.Get(ctx, "k", &got), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "k", got, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "*"))
	assert.NoError(t, repo.Close())
}
