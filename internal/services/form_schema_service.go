package services

import (
	"context"
	"fmt"

	"jobform-api/internal/formfield"
	"jobform-api/internal/metrics"
	"jobform-api/internal/models"
	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type formSchemaService struct {
	fieldRepo storage.FormFieldRepository
	jobRepo   storage.JobPostingRepository
	cache     storage.SchemaCache
	log       *zap.Logger
}

// NewFormSchemaService creates the schema store used by editors and the
// public form. cache may be nil.
func NewFormSchemaService(fieldRepo storage.FormFieldRepository, jobRepo storage.JobPostingRepository, cache storage.SchemaCache, log *zap.Logger) FormSchemaService {
	if log == nil {
		log = zap.NewNop()
	}
	return &formSchemaService{fieldRepo: fieldRepo, jobRepo: jobRepo, cache: cache, log: log}
}

// LoadSchema returns the job posting's fields by ascending order. Cache
// failures fall through to the database. The cache generation is taken before
// the database read, so a replace that commits in between keeps the stale
// rows out of the cache.
func (s *formSchemaService) LoadSchema(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, error) {
	cacheable := false
	var gen int64
	if s.cache != nil {
		fields, hit, err := s.cache.Get(ctx, jobID)
		if err != nil {
			s.log.Warn("FormSchemaService: cache read failed", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		} else if hit {
			return fields, nil
		}
		if gen, err = s.cache.Generation(ctx, jobID); err != nil {
			s.log.Warn("FormSchemaService: cache generation read failed", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		} else {
			cacheable = true
		}
	}

	fields, err := s.fieldRepo.ListByJobPosting(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, "loading form schema")
	}

	if cacheable {
		stored, err := s.cache.Set(ctx, jobID, gen, fields)
		switch {
		case err != nil:
			s.log.Warn("FormSchemaService: cache write failed", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		case !stored:
			s.log.Debug("FormSchemaService: schema changed while loading, not cached", zap.Stringer("job_posting_id", jobID))
		}
	}
	return fields, nil
}

// ReplaceSchema normalises and validates fields, then replaces the stored set.
// Invalid input returns a *formfield.SchemaError wrapped with ErrValidation and
// the store is not touched.
func (s *formSchemaService) ReplaceSchema(ctx context.Context, jobID uuid.UUID, fields []models.FieldDefinition) ([]models.FieldDefinition, error) {
	defs := formfield.Normalize(jobID, fields)
	if err := formfield.ValidateSchema(defs); err != nil {
		metrics.SchemaSaves.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	saved, err := s.fieldRepo.ReplaceAll(ctx, jobID, defs)
	if err != nil {
		metrics.SchemaSaves.WithLabelValues(metrics.ResultError).Inc()
		s.log.Error("FormSchemaService: replace failed", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		return nil, MapRepoError(err, "replacing form schema")
	}
	metrics.SchemaSaves.WithLabelValues(metrics.ResultOK).Inc()

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, jobID); err != nil {
			s.log.Warn("FormSchemaService: cache invalidation failed", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		}
	}
	return saved, nil
}

func (s *formSchemaService) Authorize(ctx context.Context, jobID, userID uuid.UUID) (*models.JobPosting, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, MapRepoError(err, "fetching job posting")
	}
	if job.EmployerID != userID {
		s.log.Warn("FormSchemaService: forbidden form access", zap.Stringer("job_posting_id", jobID), zap.Stringer("user_id", userID))
		return nil, ErrForbidden
	}
	return job, nil
}
