package services

import (
	"context"

	"jobform-api/internal/editor"
	"jobform-api/internal/models"
	"jobform-api/internal/renderer"
	"jobform-api/internal/storage"
	"jobform-api/internal/transport/dto"

	"github.com/google/uuid"
)

// JobPostingService defines the interface for job posting business logic.
type JobPostingService interface {
	CreateJobPosting(ctx context.Context, req *dto.CreateJobPostingRequest) (*models.JobPosting, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*models.JobPosting, error)
	DeleteJobPosting(ctx context.Context, id, userID uuid.UUID) error
}

// FormSchemaService owns the persisted field set of each job posting.
type FormSchemaService interface {
	editor.SchemaStore
	// Authorize checks that the job posting exists and belongs to userID.
	Authorize(ctx context.Context, jobID, userID uuid.UUID) (*models.JobPosting, error)
}

// DraftService runs editor sessions across requests.
type DraftService interface {
	Open(ctx context.Context, jobID, userID uuid.UUID) (*storage.DraftSession, error)
	Get(ctx context.Context, draftID, userID uuid.UUID) (*storage.DraftSession, error)
	AddField(ctx context.Context, draftID, userID uuid.UUID) (*storage.DraftSession, error)
	UpdateField(ctx context.Context, draftID, userID uuid.UUID, index int, patch editor.FieldPatch) (*storage.DraftSession, error)
	RemoveField(ctx context.Context, draftID, userID uuid.UUID, index int) (*storage.DraftSession, error)
	MoveField(ctx context.Context, draftID, userID uuid.UUID, from, to int) (*storage.DraftSession, error)
	ReorderFields(ctx context.Context, draftID, userID uuid.UUID, order []int) (*storage.DraftSession, error)
	AddOption(ctx context.Context, draftID, userID uuid.UUID, index int, value string) (*storage.DraftSession, error)
	UpdateOption(ctx context.Context, draftID, userID uuid.UUID, index, option int, value string) (*storage.DraftSession, error)
	RemoveOption(ctx context.Context, draftID, userID uuid.UUID, index, option int) (*storage.DraftSession, error)
	// Suggest reports a notice instead of an error when nothing was added.
	Suggest(ctx context.Context, draftID, userID uuid.UUID) (*SuggestResult, error)
	Save(ctx context.Context, draftID, userID uuid.UUID) (*SaveResult, error)
	Discard(ctx context.Context, draftID, userID uuid.UUID) error
}

// SubmissionService renders a job posting's form for candidates and checks
// their answers.
type SubmissionService interface {
	RenderForm(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, []renderer.Widget, error)
	Submit(ctx context.Context, jobID uuid.UUID, answers map[string]any) (renderer.Bundle, error)
}

type SuggestResult struct {
	Draft  *storage.DraftSession
	Added  int
	Notice string
}

type SaveResult struct {
	Draft  *storage.DraftSession
	Fields []models.FieldDefinition
}
