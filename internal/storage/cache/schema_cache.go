package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"jobform-api/internal/models"
	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	schemaKeyPrefix = "jobform:schema:"
	genKeyPrefix    = "jobform:schema-gen:"

	// genTTL keeps generation counters well past any cached entry.
	genTTL = 7 * 24 * time.Hour
)

// setIfGenerationScript writes the schema only while the generation counter
// still holds the value the caller read before loading from the database.
var setIfGenerationScript = redis.NewScript(`
local cur = redis.call("GET", KEYS[1]) or "0"
if cur ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
else
	redis.call("SET", KEYS[2], ARGV[2])
end
return 1
`)

// SchemaCache keeps field sets in Redis as JSON. Each job posting has a
// generation counter that Invalidate advances, so a load that raced with a
// replace cannot write the old field set back.
type SchemaCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

var _ storage.SchemaCache = (*SchemaCache)(nil)

func NewSchemaCache(rdb redis.Cmdable, ttl time.Duration) *SchemaCache {
	return &SchemaCache{rdb: rdb, ttl: ttl}
}

func schemaKey(jobID uuid.UUID) string { return schemaKeyPrefix + jobID.String() }

func genKey(jobID uuid.UUID) string { return genKeyPrefix + jobID.String() }

func (c *SchemaCache) Get(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, bool, error) {
	raw, err := c.rdb.Get(ctx, schemaKey(jobID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached schema: %w", err)
	}
	var fields []models.FieldDefinition
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, false, fmt.Errorf("decode cached schema: %w", err)
	}
	if fields == nil {
		fields = []models.FieldDefinition{}
	}
	return fields, true, nil
}

func (c *SchemaCache) Generation(ctx context.Context, jobID uuid.UUID) (int64, error) {
	gen, err := c.rdb.Get(ctx, genKey(jobID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read schema generation: %w", err)
	}
	return gen, nil
}

func (c *SchemaCache) Set(ctx context.Context, jobID uuid.UUID, gen int64, fields []models.FieldDefinition) (bool, error) {
	if fields == nil {
		fields = []models.FieldDefinition{}
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return false, fmt.Errorf("encode schema: %w", err)
	}
	stored, err := setIfGenerationScript.Run(ctx, c.rdb,
		[]string{genKey(jobID), schemaKey(jobID)},
		gen, raw, c.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return false, fmt.Errorf("cache schema: %w", err)
	}
	return stored == 1, nil
}

// Invalidate drops the cached schema and advances the generation.
func (c *SchemaCache) Invalidate(ctx context.Context, jobID uuid.UUID) error {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(jobID))
		pipe.Expire(ctx, genKey(jobID), genTTL)
		pipe.Del(ctx, schemaKey(jobID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate cached schema: %w", err)
	}
	return nil
}
