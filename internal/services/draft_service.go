package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobform-api/internal/editor"
	"jobform-api/internal/formfield"
	"jobform-api/internal/metrics"
	"jobform-api/internal/models"
	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NoSuggestionsNotice is shown when the suggestion step added nothing.
const NoSuggestionsNotice = "No suggestions are available right now. You can keep adding fields manually."

// errUnchanged ends an operation without storing the draft.
var errUnchanged = errors.New("draft unchanged")

type draftService struct {
	drafts    storage.DraftRepository
	schemas   FormSchemaService
	suggester editor.Suggester
	log       *zap.Logger
	now       func() time.Time
}

// NewDraftService creates a new instance of DraftService. suggester may be nil,
// in which case every suggestion request ends with a notice.
func NewDraftService(drafts storage.DraftRepository, schemas FormSchemaService, suggester editor.Suggester, log *zap.Logger) DraftService {
	if log == nil {
		log = zap.NewNop()
	}
	return &draftService{drafts: drafts, schemas: schemas, suggester: suggester, log: log, now: time.Now}
}

// Open starts a draft from the job posting's stored form.
func (s *draftService) Open(ctx context.Context, jobID, userID uuid.UUID) (*storage.DraftSession, error) {
	if _, err := s.schemas.Authorize(ctx, jobID, userID); err != nil {
		return nil, err
	}

	ed := editor.New(jobID, s.schemas, s.suggester, s.log)
	if err := ed.Load(ctx); err != nil {
		return nil, err
	}

	session := &storage.DraftSession{
		ID:        uuid.New(),
		OwnerID:   userID,
		Snapshot:  ed.Snapshot(),
		UpdatedAt: s.now().UTC(),
	}
	if err := s.drafts.Save(ctx, session); err != nil {
		s.log.Error("DraftService: error storing new draft", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		return nil, MapRepoError(err, "storing draft")
	}
	s.log.Info("draft opened", zap.Stringer("draft_id", session.ID), zap.Stringer("job_posting_id", jobID))
	return session, nil
}

func (s *draftService) Get(ctx context.Context, draftID, userID uuid.UUID) (*storage.DraftSession, error) {
	return s.load(ctx, draftID, userID)
}

func (s *draftService) AddField(ctx context.Context, draftID, userID uuid.UUID) (*storage.DraftSession, error) {
	return s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		ed.AddField()
		return nil
	})
}

func (s *draftService) UpdateField(ctx context.Context, draftID, userID uuid.UUID, index int, patch editor.FieldPatch) (*storage.DraftSession, error) {
	return s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		return ed.UpdateField(index, patch)
	})
}

func (s *draftService) RemoveField(ctx context.Context, draftID, userID uuid.UUID, index int) (*storage.DraftSession, error) {
	return s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		return ed.RemoveField(index)
	})
}

func (s *draftService) MoveField(ctx context.Context, draftID, userID uuid.UUID, from, to int) (*storage.DraftSession, error) {
	return s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		return ed.Move(from, to)
	})
}

func (s *draftService) ReorderFields(ctx context.Context, draftID, userID uuid.UUID, order []int) (*storage.DraftSession, error) {
	return s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		return ed.Reorder(order)
	})
}

// AddOption appends an option to a field, with value when it is not blank.
func (s *draftService) AddOption(ctx context.Context, draftID, userID uuid.UUID, index int, value string) (*storage.DraftSession, error) {
	return s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		if err := ed.AddOption(index); err != nil {
			return err
		}
		if value == "" {
			return nil
		}
		options := ed.Draft().Fields[index].Options
		return ed.UpdateOption(index, len(options)-1, value)
	})
}

func (s *draftService) UpdateOption(ctx context.Context, draftID, userID uuid.UUID, index, option int, value string) (*storage.DraftSession, error) {
	return s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		return ed.UpdateOption(index, option, value)
	})
}

func (s *draftService) RemoveOption(ctx context.Context, draftID, userID uuid.UUID, index, option int) (*storage.DraftSession, error) {
	return s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		return ed.RemoveOption(index, option)
	})
}

// Suggest appends AI-suggested fields built from the job posting text. Any
// failure of the suggestion step is reported as a notice with the draft
// unchanged.
func (s *draftService) Suggest(ctx context.Context, draftID, userID uuid.UUID) (*SuggestResult, error) {
	result := &SuggestResult{}
	session, err := s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		job, err := s.schemas.Authorize(ctx, ed.JobPostingID(), userID)
		if err != nil {
			return err
		}
		added, err := ed.Suggest(ctx, models.JobContext{
			Title:        job.Title,
			Description:  job.Description,
			Requirements: job.Requirements,
		})
		if errors.Is(err, editor.ErrNoSuggestions) {
			metrics.Suggestions.WithLabelValues(metrics.ResultEmpty).Inc()
			result.Notice = NoSuggestionsNotice
			return errUnchanged
		}
		if err != nil {
			return err
		}
		metrics.Suggestions.WithLabelValues(metrics.ResultOK).Inc()
		result.Added = added
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Draft = session
	return result, nil
}

// Save validates the draft and replaces the stored form with it. Validation
// problems come back as a *formfield.SchemaError wrapped with ErrValidation;
// store failures as ErrSaveFailed with the draft left as it was.
func (s *draftService) Save(ctx context.Context, draftID, userID uuid.UUID) (*SaveResult, error) {
	result := &SaveResult{}
	session, err := s.run(ctx, draftID, userID, func(ed *editor.Editor) error {
		if _, err := s.schemas.Authorize(ctx, ed.JobPostingID(), userID); err != nil {
			return err
		}
		saved, err := ed.Save(ctx)
		if err != nil {
			var schemaErr *formfield.SchemaError
			switch {
			case errors.As(err, &schemaErr):
				return fmt.Errorf("%w: %w", ErrValidation, schemaErr)
			case errors.Is(err, editor.ErrSaveFailed):
				return fmt.Errorf("%w: %w", ErrSaveFailed, err)
			}
			return err
		}
		result.Fields = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Draft = session
	return result, nil
}

func (s *draftService) Discard(ctx context.Context, draftID, userID uuid.UUID) error {
	unlock, err := s.drafts.Lock(ctx, draftID)
	if err != nil {
		return MapRepoError(err, "locking draft")
	}
	defer unlock()

	if _, err := s.load(ctx, draftID, userID); err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, draftID); err != nil {
		return MapRepoError(err, "deleting draft")
	}
	return nil
}

func (s *draftService) load(ctx context.Context, draftID, userID uuid.UUID) (*storage.DraftSession, error) {
	session, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, MapRepoError(err, "loading draft")
	}
	if session.OwnerID != userID {
		s.log.Warn("DraftService: forbidden draft access", zap.Stringer("draft_id", draftID), zap.Stringer("user_id", userID))
		return nil, ErrForbidden
	}
	return session, nil
}

// run holds the draft lock while fn works on a restored editor, then stores
// the editor's new state. Nothing is stored when fn fails.
func (s *draftService) run(ctx context.Context, draftID, userID uuid.UUID, fn func(ed *editor.Editor) error) (*storage.DraftSession, error) {
	unlock, err := s.drafts.Lock(ctx, draftID)
	if err != nil {
		return nil, MapRepoError(err, "locking draft")
	}
	defer unlock()

	session, err := s.load(ctx, draftID, userID)
	if err != nil {
		return nil, err
	}

	ed := editor.Restore(session.Snapshot, s.schemas, s.suggester, s.log.With(zap.Stringer("draft_id", draftID)))
	if err := fn(ed); err != nil {
		if errors.Is(err, errUnchanged) {
			return session, nil
		}
		return nil, mapEditError(err)
	}

	session.Snapshot = ed.Snapshot()
	session.UpdatedAt = s.now().UTC()
	if err := s.drafts.Save(ctx, session); err != nil {
		s.log.Error("DraftService: error storing draft", zap.Stringer("draft_id", draftID), zap.Error(err))
		return nil, MapRepoError(err, "storing draft")
	}
	return session, nil
}
