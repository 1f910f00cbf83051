package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/isp-backoffice-api/internal/subscription"
	appErrors "github.com/noah-isme/isp-backoffice-api/pkg/errors"
)

type memoryCache struct {
	values map[string]interface{}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	v, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*(dest.(*Draft)) = *(v.(*Draft))
	return nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func TestMemoryDraftStoreExpires(t *testing.T) {
	store := NewMemoryDraftStore(10, 30*time.Millisecond)

	draft := &Draft{ID: "d1", OwnerID: "admin-1", Editor: subscription.New(10)}
	require.NoError(t, store.Save(context.Background(), draft, time.Hour))

	got, err := store.Get(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", got.OwnerID)

	assert.Eventually(t, func() bool {
		_, err := store.Get(context.Background(), "d1")
		return err != nil
	}, time.Second, 10*time.Millisecond)
	_, err = store.Get(context.Background(), "d1")
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}

func TestMemoryDraftStoreEvictsOldest(t *testing.T) {
	store := NewMemoryDraftStore(1, time.Minute)
	require.NoError(t, store.Save(context.Background(), &Draft{ID: "d1", Editor: subscription.New(10)}, 0))
	require.NoError(t, store.Save(context.Background(), &Draft{ID: "d2", Editor: subscription.New(10)}, 0))

	_, err := store.Get(context.Background(), "d1")
	requireAppError(t, err, appErrors.ErrNotFound.Code)
	_, err = store.Get(context.Background(), "d2")
	assert.NoError(t, err)
}

func TestMemoryDraftStoreReturnsCopies(t *testing.T) {
	store := NewMemoryDraftStore(10, time.Minute)
	draft := &Draft{ID: "d1", Editor: subscription.New(10)}
	require.NoError(t, store.Save(context.Background(), draft, time.Minute))

	got, err := store.Get(context.Background(), "d1")
	require.NoError(t, err)
	_, err = got.Editor.AddEntry("b1")
	require.NoError(t, err)

	again, err := store.Get(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Editor.Count())
}

func TestCacheDraftStore(t *testing.T) {
	cache := NewCacheService(&memoryCache{values: map[string]interface{}{}}, NewMetricsService(), time.Minute, nil, true)
	store := NewCacheDraftStore(cache)

	_, err := store.Get(context.Background(), "d1")
	requireAppError(t, err, appErrors.ErrNotFound.Code)

	require.NoError(t, store.Save(context.Background(), &Draft{ID: "d1", OwnerID: "admin-1", Editor: subscription.New(10)}, time.Minute))
	got, err := store.Get(context.Background(), "d1")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", got.OwnerID)

	require.NoError(t, store.Delete(context.Background(), "d1"))
	_, err = store.Get(context.Background(), "d1")
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}
