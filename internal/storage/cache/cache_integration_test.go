package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"jobform-api/internal/editor"
	"jobform-api/internal/models"
	"jobform-api/internal/storage"
	"jobform-api/internal/storage/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getTestRedis connects to TEST_REDIS_URL (host:port). Tests are skipped when
// it is not set or unreachable.
func getTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_URL")
	if addr == "" {
		t.Skip("TEST_REDIS_URL environment variable not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		t.Skipf("test Redis at %s unreachable: %v", addr, err)
	}
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestSchemaCache_RoundTrip(t *testing.T) {
	rdb := getTestRedis(t)
	ctx := context.Background()
	c := cache.NewSchemaCache(rdb, time.Minute)
	jobID := uuid.New()

	_, hit, err := c.Get(ctx, jobID)
	require.NoError(t, err)
	assert.False(t, hit)

	fields := []models.FieldDefinition{
		{ID: uuid.New(), JobPostingID: jobID, Name: "years", Label: "Years", Type: models.FieldTypeNumber, Required: true},
	}
	gen, err := c.Generation(ctx, jobID)
	require.NoError(t, err)
	stored, err := c.Set(ctx, jobID, gen, fields)
	require.NoError(t, err)
	require.True(t, stored)

	got, hit, err := c.Get(ctx, jobID)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, fields[0].Name, got[0].Name)
	assert.Equal(t, fields[0].ID, got[0].ID)

	require.NoError(t, c.Invalidate(ctx, jobID))
	_, hit, err = c.Get(ctx, jobID)
	require.NoError(t, err)
	assert.False(t, hit)

	// an empty schema is still a hit
	gen, err = c.Generation(ctx, jobID)
	require.NoError(t, err)
	stored, err = c.Set(ctx, jobID, gen, nil)
	require.NoError(t, err)
	require.True(t, stored)
	got, hit, err = c.Get(ctx, jobID)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Empty(t, got)
	require.NoError(t, c.Invalidate(ctx, jobID))
}

func TestSchemaCache_StaleGenerationIsRejected(t *testing.T) {
	rdb := getTestRedis(t)
	ctx := context.Background()
	c := cache.NewSchemaCache(rdb, time.Minute)
	jobID := uuid.New()
	old := []models.FieldDefinition{{JobPostingID: jobID, Name: "old", Label: "Old", Type: models.FieldTypeText}}

	gen, err := c.Generation(ctx, jobID)
	require.NoError(t, err)

	// a replace lands between the database read and the cache write
	require.NoError(t, c.Invalidate(ctx, jobID))

	stored, err := c.Set(ctx, jobID, gen, old)
	require.NoError(t, err)
	assert.False(t, stored)
	_, hit, err := c.Get(ctx, jobID)
	require.NoError(t, err)
	assert.False(t, hit)

	next, err := c.Generation(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, gen+1, next)
	stored, err = c.Set(ctx, jobID, next, old)
	require.NoError(t, err)
	assert.True(t, stored)

	require.NoError(t, c.Invalidate(ctx, jobID))
}

func TestDraftRepo_SaveGetDelete(t *testing.T) {
	rdb := getTestRedis(t)
	ctx := context.Background()
	repo := cache.NewDraftRepo(rdb, time.Minute, time.Second)

	jobID := uuid.New()
	d := editor.NewDraft(jobID, nil)
	d.AddField()
	session := &storage.DraftSession{
		ID:       uuid.New(),
		OwnerID:  uuid.New(),
		Snapshot: editor.Snapshot{Draft: d, State: editor.StateEditing, Revision: 3},
	}
	require.NoError(t, repo.Save(ctx, session))

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.OwnerID, got.OwnerID)
	assert.Equal(t, uint64(3), got.Snapshot.Revision)
	require.Len(t, got.Snapshot.Draft.Fields, 1)
	assert.True(t, got.Snapshot.Draft.Fields[0].AutoName)

	require.NoError(t, repo.Delete(ctx, session.ID))
	_, err = repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, session.ID), storage.ErrNotFound)
}

func TestDraftRepo_LockIsExclusive(t *testing.T) {
	rdb := getTestRedis(t)
	ctx := context.Background()
	repo := cache.NewDraftRepo(rdb, time.Minute, 5*time.Second)
	id := uuid.New()

	unlock, err := repo.Lock(ctx, id)
	require.NoError(t, err)

	_, err = repo.Lock(ctx, id)
	assert.ErrorIs(t, err, storage.ErrLocked)

	unlock()
	unlock2, err := repo.Lock(ctx, id)
	require.NoError(t, err)
	unlock2()
}
