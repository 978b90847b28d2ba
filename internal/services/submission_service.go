package services

import (
	"context"
	"errors"
	"fmt"

	"jobform-api/internal/metrics"
	"jobform-api/internal/models"
	"jobform-api/internal/renderer"
	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type submissionService struct {
	schemas FormSchemaService
	jobRepo storage.JobPostingRepository
	log     *zap.Logger
}

func NewSubmissionService(schemas FormSchemaService, jobRepo storage.JobPostingRepository, log *zap.Logger) SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &submissionService{schemas: schemas, jobRepo: jobRepo, log: log}
}

func (s *submissionService) load(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, MapRepoError(err, "fetching job posting")
	}
	return s.schemas.LoadSchema(ctx, jobID)
}

// RenderForm returns the job posting's fields and their widgets.
func (s *submissionService) RenderForm(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, []renderer.Widget, error) {
	defs, err := s.load(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	widgets, err := renderer.Render(defs)
	if err != nil {
		s.log.Error("SubmissionService: stored schema cannot be rendered", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		return nil, nil, fmt.Errorf("internal error rendering form: %w", err)
	}
	return defs, widgets, nil
}

// Submit validates answers against the job posting's form. Field problems are
// returned as a *renderer.SubmissionError wrapped with ErrValidation.
func (s *submissionService) Submit(ctx context.Context, jobID uuid.UUID, answers map[string]any) (renderer.Bundle, error) {
	defs, err := s.load(ctx, jobID)
	if err != nil {
		return renderer.Bundle{}, err
	}

	bundle, err := renderer.Submit(defs, answers)
	if err != nil {
		var subErr *renderer.SubmissionError
		if errors.As(err, &subErr) {
			metrics.Submissions.WithLabelValues(metrics.ResultInvalid).Inc()
			return renderer.Bundle{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		metrics.Submissions.WithLabelValues(metrics.ResultError).Inc()
		s.log.Error("SubmissionService: stored schema cannot be used", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		return renderer.Bundle{}, fmt.Errorf("internal error validating answers: %w", err)
	}

	metrics.Submissions.WithLabelValues(metrics.ResultOK).Inc()
	return bundle, nil
}
