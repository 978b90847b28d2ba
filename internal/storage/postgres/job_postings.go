// internal/storage/postgres/job_postings.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"jobform-api/internal/models"
	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// JobPostingRepo implements the storage.JobPostingRepository interface using PostgreSQL.
type JobPostingRepo struct {
	db  Querier
	log *zap.Logger
}

// NewJobPostingRepo creates a new JobPostingRepo.
func NewJobPostingRepo(db *pgxpool.Pool, log *zap.Logger) *JobPostingRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &JobPostingRepo{db: db, log: log}
}

// WithTx creates a new JobPostingRepo with the transaction.
func (r *JobPostingRepo) WithTx(tx pgx.Tx) storage.JobPostingRepository {
	return &JobPostingRepo{db: tx, log: r.log}
}

// Compile-time check to ensure JobPostingRepo implements JobPostingRepository
var _ storage.JobPostingRepository = (*JobPostingRepo)(nil)

// Create saves a new job posting.
func (r *JobPostingRepo) Create(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	query := `
		INSERT INTO job_postings (id, employer_id, title, description, requirements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, employer_id, title, description, requirements, created_at, updated_at
	`

	id := job.ID
	if id == uuid.Nil {
		id = uuid.New() // Generate ID server-side
	}

	var created models.JobPosting
	err := r.db.QueryRow(ctx, query, id, job.EmployerID, job.Title, job.Description, job.Requirements).Scan(
		&created.ID,
		&created.EmployerID,
		&created.Title,
		&created.Description,
		&created.Requirements,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		r.log.Error("creating job posting", zap.Stringer("employer_id", job.EmployerID), zap.Error(err))
		return nil, mapPgError(err, "failed to create job posting")
	}

	r.log.Info("job posting created", zap.Stringer("id", created.ID))
	return &created, nil
}

// GetByID retrieves a specific job posting by its ID.
func (r *JobPostingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	query := `
		SELECT id, employer_id, title, description, requirements, created_at, updated_at
		FROM job_postings
		WHERE id = $1
	`

	var job models.JobPosting
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID,
		&job.EmployerID,
		&job.Title,
		&job.Description,
		&job.Requirements,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		r.log.Error("scanning job posting", zap.Stringer("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get job posting by ID %s: %w", id, err)
	}

	return &job, nil
}

// Delete removes a job posting by its ID. Its form fields go with it.
func (r *JobPostingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("deleting job posting", zap.Stringer("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete job posting %s: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	r.log.Info("job posting deleted", zap.Stringer("id", id))
	return nil
}
