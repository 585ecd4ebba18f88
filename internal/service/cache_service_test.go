package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemCacheRepo()
	svc := NewCacheService(repo, nil, 0, nil, false)
	svc.Set(context.Background(), "view:x", 1, 0)

	var out int
	assert.False(t, svc.Get(context.Background(), "view:x", &out))
	assert.Empty(t, repo.store)

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	nilSvc.InvalidateViews(context.Background())
}

func TestCacheServiceRoundTripAndInvalidate(t *testing.T) {
	repo := newMemCacheRepo()
	svc := NewCacheService(repo, NewMetricsService(), 0, nil, true)
	ctx := context.Background()

	key := ViewKey("DASHBOARD", "u1", 4)
	assert.Equal(t, "view:DASHBOARD:u1:4", key)

	svc.Set(ctx, key, map[string]int{"total": 3}, 0)
	var got map[string]int
	assert.True(t, svc.Get(ctx, key, &got))
	assert.Equal(t, 3, got["total"])

	svc.InvalidateViews(ctx)
	assert.Equal(t, []string{"view:*"}, repo.invalidated)
	assert.False(t, svc.Get(ctx, key, &got))
}

func TestCacheServiceErrorIsMiss(t *testing.T) {
	repo := newMemCacheRepo()
	repo.getErr = errors.New("redis down")
	svc := NewCacheService(repo, nil, 0, nil, true)

	var out int
	assert.False(t, svc.Get(context.Background(), "view:x", &out))
}
