package services

import (
	"errors"
	"fmt"

	"jobform-api/internal/editor"
	"jobform-api/internal/storage"
)

// MapRepoError maps storage errors to service errors
func MapRepoError(err error, operation string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, operation)
	}
	if errors.Is(err, storage.ErrConflict) {
		return fmt.Errorf("%w: %s (%v)", ErrConflict, operation, err)
	}
	if errors.Is(err, storage.ErrLocked) {
		return fmt.Errorf("%w: %s", ErrDraftBusy, operation)
	}
	return fmt.Errorf("internal error during %s: %w", operation, err)
}

// mapEditError maps editor errors to service errors. Schema errors keep their
// issue list reachable with errors.As.
func mapEditError(err error) error {
	switch {
	case errors.Is(err, editor.ErrIndexOutOfRange),
		errors.Is(err, editor.ErrInvalidPermutation),
		errors.Is(err, editor.ErrInvalidFieldType):
		return fmt.Errorf("%w: %w", ErrValidation, err)
	case errors.Is(err, editor.ErrSaveInProgress), errors.Is(err, editor.ErrSuggestInProgress):
		return fmt.Errorf("%w: %w", ErrDraftBusy, err)
	}
	return err
}
