package app

import (
	"context"
	"errors"
	"fmt"

	"jobform-api/config"
	"jobform-api/internal/api/handlers"
	"jobform-api/internal/database"
	"jobform-api/internal/editor"
	"jobform-api/internal/services"
	"jobform-api/internal/storage/cache"
	"jobform-api/internal/storage/postgres"
	"jobform-api/internal/suggest"
	"jobform-api/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	DBPool      *pgxpool.Pool
	RedisClient *redis.Client
	Validator   *validator.Validate
	Logger      *zap.Logger

	JobPostingService services.JobPostingService
	FormSchemaService services.FormSchemaService
	DraftService      services.DraftService
	SubmissionService services.SubmissionService
}

// New connects to Postgres and Redis, applies migrations and wires the
// services. The caller owns the result and must Close it.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Application, error) {
	dbPool, err := database.NewConnectionPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(ctx, dbPool, log); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	redisClient, err := database.NewRedisClient(ctx, cfg.Redis, log)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	validate, err := dto.NewValidator()
	if err != nil {
		dbPool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("building validator: %w", err)
	}

	suggester, err := newSuggester(ctx, cfg.AI, log)
	if err != nil {
		dbPool.Close()
		_ = redisClient.Close()
		return nil, err
	}

	jobRepo := postgres.NewJobPostingRepo(dbPool, log)
	fieldRepo := postgres.NewFormFieldRepo(dbPool, log)
	schemaCache := cache.NewSchemaCache(redisClient, cfg.Redis.CacheTTL)
	draftRepo := cache.NewDraftRepo(redisClient, cfg.Drafts.TTL, cfg.Drafts.LockTTL)

	schemas := services.NewFormSchemaService(fieldRepo, jobRepo, schemaCache, log)

	return &Application{
		Config:            cfg,
		DBPool:            dbPool,
		RedisClient:       redisClient,
		Validator:         validate,
		Logger:            log,
		JobPostingService: services.NewJobPostingService(dbPool, jobRepo, schemaCache, log),
		FormSchemaService: schemas,
		DraftService:      services.NewDraftService(draftRepo, schemas, suggester, log),
		SubmissionService: services.NewSubmissionService(schemas, jobRepo, log),
	}, nil
}

// newSuggester returns a nil Suggester when no model is configured, which
// turns suggestion requests into a "no suggestions" notice.
func newSuggester(ctx context.Context, cfg config.AIConfig, log *zap.Logger) (editor.Suggester, error) {
	model, err := suggest.NewModel(ctx, cfg)
	if errors.Is(err, suggest.ErrNotConfigured) {
		log.Warn("AI field suggestions disabled", zap.String("provider", cfg.Provider), zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("building %s model: %w", cfg.Provider, err)
	}

	client, err := suggest.NewClient(
		suggest.LLMGenerator{Model: model, Temperature: cfg.Temperature},
		suggest.WithTimeout(cfg.Timeout),
		suggest.WithMaxFields(cfg.MaxFields),
		suggest.WithRateLimit(cfg.RateLimit, cfg.Burst),
		suggest.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("building suggestion client: %w", err)
	}
	log.Info("AI field suggestions enabled", zap.String("provider", cfg.Provider), zap.String("model", cfg.Model))
	return client, nil
}

// HealthChecks lists the dependencies probed by the health endpoint.
func (a *Application) HealthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if a.DBPool != nil {
		checks["postgres"] = a.DBPool
	}
	if a.RedisClient != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return a.RedisClient.Ping(ctx).Err()
		})
	}
	return checks
}

// Close releases the database pool and the redis client.
func (a *Application) Close() {
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Logger.Warn("closing redis client", zap.Error(err))
		}
	}
	if a.DBPool != nil {
		a.DBPool.Close()
	}
}
