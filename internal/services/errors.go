package services

import "errors"

// Define common service errors
var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict") // e.g., duplicate field name
	ErrValidation = errors.New("validation failed")
	ErrDraftBusy  = errors.New("draft is busy with another operation")
	ErrSaveFailed = errors.New("failed to save form, please retry")
)
