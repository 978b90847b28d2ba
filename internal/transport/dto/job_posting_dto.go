// internal/transport/dto/job_posting_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateJobPostingRequest defines the structure for creating a new job posting.
type CreateJobPostingRequest struct {
	Title        string    `json:"title" validate:"required,max=200"`
	Description  string    `json:"description" validate:"max=20000"`
	Requirements string    `json:"requirements" validate:"max=20000"`
	EmployerID   uuid.UUID `json:"-"` // Set internally by handler from auth context
}

// JobPostingResponse defines the job posting returned by the API.
type JobPostingResponse struct {
	ID           uuid.UUID `json:"id"`
	EmployerID   uuid.UUID `json:"employer_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
