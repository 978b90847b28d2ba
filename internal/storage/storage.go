package storage

import (
	"context"
	"time"

	"jobform-api/internal/editor"
	"jobform-api/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FormFieldRepository is the durable store of a job posting's field set. The
// set is only ever read whole or replaced whole.
type FormFieldRepository interface {
	ListByJobPosting(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, error)
	// ReplaceAll deletes every field of the job posting and inserts fields in
	// list order. Nothing is changed when it returns an error.
	ReplaceAll(ctx context.Context, jobID uuid.UUID, fields []models.FieldDefinition) ([]models.FieldDefinition, error)
	WithTx(tx pgx.Tx) FormFieldRepository
}

// JobPostingRepository defines the interface for job posting data operations.
type JobPostingRepository interface {
	Create(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error)
	Delete(ctx context.Context, id uuid.UUID) error
	WithTx(tx pgx.Tx) JobPostingRepository
}

// SchemaCache holds recently read field sets. A miss is (nil, false, nil).
type SchemaCache interface {
	Get(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, bool, error)
	// Generation returns the job posting's cache generation. Invalidate
	// advances it.
	Generation(ctx context.Context, jobID uuid.UUID) (int64, error)
	// Set stores fields that were read at generation gen. It stores nothing
	// and reports false when an Invalidate happened since gen was taken.
	Set(ctx context.Context, jobID uuid.UUID, gen int64, fields []models.FieldDefinition) (bool, error)
	Invalidate(ctx context.Context, jobID uuid.UUID) error
}

// DraftSession is a recruiter's editor persisted between requests.
type DraftSession struct {
	ID        uuid.UUID       `json:"id"`
	OwnerID   uuid.UUID       `json:"owner_id"`
	Snapshot  editor.Snapshot `json:"snapshot"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// DraftRepository stores draft sessions with an expiry and serialises work on
// a single draft.
type DraftRepository interface {
	Save(ctx context.Context, draft *DraftSession) error
	Get(ctx context.Context, id uuid.UUID) (*DraftSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Lock takes the per-draft lock or fails with ErrLocked. The returned
	// func releases it.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}
