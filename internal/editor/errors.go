package editor

import "errors"

var (
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvalidPermutation = errors.New("invalid field permutation")
	ErrInvalidFieldType   = errors.New("invalid field type")
	ErrSaveInProgress     = errors.New("a save is already in progress")
	ErrSuggestInProgress  = errors.New("a suggestion request is already in progress")
	ErrSaveFailed         = errors.New("failed to save form")
	ErrNoSuggestions      = errors.New("no field suggestions available")
)
