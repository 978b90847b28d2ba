package services

import (
	"context"
	"fmt"

	"jobform-api/internal/models"
	"jobform-api/internal/storage"
	"jobform-api/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TxBeginner starts transactions; *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type jobPostingService struct {
	db      TxBeginner
	jobRepo storage.JobPostingRepository
	cache   storage.SchemaCache
	log     *zap.Logger
}

// NewJobPostingService creates a new instance of JobPostingService. cache may be nil.
func NewJobPostingService(db TxBeginner, jobRepo storage.JobPostingRepository, cache storage.SchemaCache, log *zap.Logger) JobPostingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &jobPostingService{db: db, jobRepo: jobRepo, cache: cache, log: log}
}

func (s *jobPostingService) CreateJobPosting(ctx context.Context, req *dto.CreateJobPostingRequest) (*models.JobPosting, error) {
	job, err := s.jobRepo.Create(ctx, &models.JobPosting{
		EmployerID:   req.EmployerID,
		Title:        req.Title,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		s.log.Error("JobPostingService: error creating job posting", zap.Error(err))
		return nil, MapRepoError(err, "creating job posting")
	}
	return job, nil
}

func (s *jobPostingService) GetJobPosting(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, MapRepoError(err, "getting job posting by ID")
	}
	return job, nil
}

// DeleteJobPosting removes a job posting owned by userID together with its form.
func (s *jobPostingService) DeleteJobPosting(ctx context.Context, id, userID uuid.UUID) error {
	// --- Transaction Start ---
	tx, err := s.db.Begin(ctx)
	if err != nil {
		s.log.Error("DeleteJobPosting: error beginning transaction", zap.Error(err))
		return fmt.Errorf("internal error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx) // Rollback if anything fails

	txRepo := s.jobRepo.WithTx(tx)
	job, err := txRepo.GetByID(ctx, id)
	if err != nil {
		return MapRepoError(err, "fetching job posting for delete")
	}
	if job.EmployerID != userID {
		s.log.Warn("DeleteJobPosting: forbidden attempt", zap.Stringer("job_posting_id", id), zap.Stringer("user_id", userID))
		return ErrForbidden
	}
	if err := txRepo.Delete(ctx, id); err != nil {
		return MapRepoError(err, "deleting job posting")
	}

	if err := tx.Commit(ctx); err != nil {
		s.log.Error("DeleteJobPosting: error committing transaction", zap.Error(err))
		return fmt.Errorf("internal error committing changes: %w", err)
	}
	// --- End Transaction ---

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, id); err != nil {
			s.log.Warn("DeleteJobPosting: cache invalidation failed", zap.Stringer("job_posting_id", id), zap.Error(err))
		}
	}
	return nil
}
