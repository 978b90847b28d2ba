package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix = "jobform:draft:"
	lockKeyPrefix  = "jobform:draft-lock:"
)

// unlockScript deletes the lock only if it still holds our token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// DraftRepo stores editor sessions in Redis. Every Save refreshes the TTL.
type DraftRepo struct {
	rdb     redis.Cmdable
	ttl     time.Duration
	lockTTL time.Duration
}

var _ storage.DraftRepository = (*DraftRepo)(nil)

func NewDraftRepo(rdb redis.Cmdable, ttl, lockTTL time.Duration) *DraftRepo {
	return &DraftRepo{rdb: rdb, ttl: ttl, lockTTL: lockTTL}
}

func draftKey(id uuid.UUID) string { return draftKeyPrefix + id.String() }

func lockKey(id uuid.UUID) string { return lockKeyPrefix + id.String() }

func (r *DraftRepo) Save(ctx context.Context, d *storage.DraftSession) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := r.rdb.Set(ctx, draftKey(d.ID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("store draft %s: %w", d.ID, err)
	}
	return nil
}

func (r *DraftRepo) Get(ctx context.Context, id uuid.UUID) (*storage.DraftSession, error) {
	raw, err := r.rdb.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read draft %s: %w", id, err)
	}
	var d storage.DraftSession
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return &d, nil
}

func (r *DraftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.rdb.Del(ctx, draftKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete draft %s: %w", id, err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *DraftRepo) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	token := uuid.NewString()
	ok, err := r.rdb.SetNX(ctx, lockKey(id), token, r.lockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("lock draft %s: %w", id, err)
	}
	if !ok {
		return nil, storage.ErrLocked
	}
	return func() {
		// release even if the request context is already done
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = unlockScript.Run(ctx, r.rdb, []string{lockKey(id)}, token).Err()
	}, nil
}
