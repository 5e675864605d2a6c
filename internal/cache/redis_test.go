package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dom/notes-api/internal/cache"
	"github.com/dom/notes-api/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.ProfileCache, *miniredis.Miniredis) {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client, err := cache.NewClient(context.Background(), cache.Options{Addr: s.Addr()})
	require.NoError(t, err)

	pc := cache.NewProfileCache(client, ttl)
	t.Cleanup(func() { _ = pc.Close() })
	return pc, s
}

func TestProfileCache_Delete(t *testing.T) {
	pc, mr := newTestCache(t, time.Minute)
	ctx := context.Background()
	profile := &domain.Profile{ID: uuid.New(), FullName: "Ada", Email: "ada@example.com"}

	require.NoError(t, pc.Set(ctx, profile))
	require.NoError(t, pc.Delete(ctx, profile.ID))
	assert.False(t, mr.Exists("notes:profile:"+profile.ID.String()))

	_, ok, err := pc.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, pc.Delete(ctx, uuid.New()))
}

func TestProfileCache_Miss(t *testing.T) {
	pc, _ := newTestCache(t, time.Minute)

	profile, ok, err := pc.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, profile)
}

func TestProfileCache_SetGet(t *testing.T) {
	pc, s := newTestCache(t, time.Minute)
	ctx := context.Background()

	want := &domain.Profile{
		ID:        uuid.New(),
		FullName:  "Margaret Hamilton",
		Email:     "margaret@example.com",
		CreatedOn: time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC),
	}
	require.NoError(t, pc.Set(ctx, want))

	got, ok, err := pc.Get(ctx, want.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.FullName, got.FullName)
	assert.Equal(t, want.Email, got.Email)
	assert.True(t, want.CreatedOn.Equal(got.CreatedOn))

	assert.Equal(t, time.Minute, s.TTL("notes:profile:"+want.ID.String()))
}

func TestProfileCache_Expiry(t *testing.T) {
	pc, s := newTestCache(t, time.Minute)
	ctx := context.Background()

	profile := &domain.Profile{ID: uuid.New(), FullName: "Temp"}
	require.NoError(t, pc.Set(ctx, profile))

	s.FastForward(2 * time.Minute)

	_, ok, err := pc.Get(ctx, profile.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileCache_CorruptEntryIsMiss(t *testing.T) {
	pc, s := newTestCache(t, time.Minute)
	id := uuid.New()
	require.NoError(t, s.Set("notes:profile:"+id.String(), "{not json"))

	_, ok, err := pc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileCache_ServerDown(t *testing.T) {
	pc, s := newTestCache(t, time.Minute)
	s.Close()

	_, ok, err := pc.Get(context.Background(), uuid.New())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNewClient_ConnectionFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := cache.NewClient(ctx, cache.Options{Addr: "127.0.0.1:1"})
	assert.Error(t, err)
}
