// Package editor implements the recruiter-side authoring of a job posting's
// custom application form: a local draft that is edited freely and committed
// to the schema store as a whole on save.
package editor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"jobform-api/internal/formfield"
	"jobform-api/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SchemaStore is the durable owner of a job posting's field set.
type SchemaStore interface {
	LoadSchema(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, error)
	ReplaceSchema(ctx context.Context, jobID uuid.UUID, fields []models.FieldDefinition) ([]models.FieldDefinition, error)
}

// Suggester proposes fields for a job posting.
type Suggester interface {
	SuggestFields(ctx context.Context, job models.JobContext) ([]models.FieldSuggestion, error)
}

type State string

const (
	StateLoaded  State = "loaded"
	StateEditing State = "editing"
	StateSaving  State = "saving"
)

// Snapshot is the serialisable state of an Editor.
type Snapshot struct {
	Draft    Draft                    `json:"draft"`
	Baseline []models.FieldDefinition `json:"baseline"`
	State    State                    `json:"state"`
	Revision uint64                   `json:"revision"`
}

// Editor owns one draft. Edits never reach the store; Save commits the whole
// draft. Save and Suggest each allow a single call in flight.
type Editor struct {
	store     SchemaStore
	suggester Suggester
	log       *zap.Logger

	mu       sync.Mutex
	draft    Draft
	baseline []models.FieldDefinition
	state    State
	revision uint64

	saving     atomic.Bool
	suggesting atomic.Bool
}

// New creates an editor with an empty draft. suggester may be nil.
func New(jobID uuid.UUID, store SchemaStore, suggester Suggester, logger *zap.Logger) *Editor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Editor{
		store:     store,
		suggester: suggester,
		log:       logger.With(zap.String("job_posting_id", jobID.String())),
		draft:     Draft{JobPostingID: jobID},
		state:     StateLoaded,
	}
}

// Restore rebuilds an editor from a snapshot.
func Restore(snap Snapshot, store SchemaStore, suggester Suggester, logger *zap.Logger) *Editor {
	e := New(snap.Draft.JobPostingID, store, suggester, logger)
	e.draft = snap.Draft.Clone()
	e.baseline = cloneDefinitions(snap.Baseline)
	e.revision = snap.Revision
	e.state = snap.State
	if e.state == StateSaving || e.state == "" {
		e.state = StateEditing
	}
	return e
}

// Load replaces the draft with the persisted schema.
func (e *Editor) Load(ctx context.Context) error {
	defs, err := e.store.LoadSchema(ctx, e.JobPostingID())
	if err != nil {
		return fmt.Errorf("loading form schema: %w", err)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = NewDraft(e.draft.JobPostingID, defs)
	e.baseline = cloneDefinitions(defs)
	e.state = StateLoaded
	e.revision++
	return nil
}

func (e *Editor) JobPostingID() uuid.UUID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.JobPostingID
}

// Draft returns a copy of the current draft.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.Clone()
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot captures the editor for later Restore.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		Draft:    e.draft.Clone(),
		Baseline: cloneDefinitions(e.baseline),
		State:    e.state,
		Revision: e.revision,
	}
}

func (e *Editor) AddField() int {
	var idx int
	_ = e.edit(func(d *Draft) error {
		idx = d.AddField()
		return nil
	})
	return idx
}

func (e *Editor) RemoveField(index int) error {
	return e.edit(func(d *Draft) error { return d.RemoveField(index) })
}

func (e *Editor) Move(from, to int) error {
	return e.edit(func(d *Draft) error { return d.Move(from, to) })
}

func (e *Editor) Reorder(perm []int) error {
	return e.edit(func(d *Draft) error { return d.Reorder(perm) })
}

func (e *Editor) UpdateField(index int, patch FieldPatch) error {
	return e.edit(func(d *Draft) error { return d.UpdateField(index, patch) })
}

func (e *Editor) AddOption(index int) error {
	return e.edit(func(d *Draft) error { return d.AddOption(index) })
}

func (e *Editor) UpdateOption(index, optionIndex int, value string) error {
	return e.edit(func(d *Draft) error { return d.UpdateOption(index, optionIndex, value) })
}

func (e *Editor) RemoveOption(index, optionIndex int) error {
	return e.edit(func(d *Draft) error { return d.RemoveOption(index, optionIndex) })
}

// Suggest asks the suggester for fields and appends them to the draft. Any
// failure leaves the draft untouched and is reported as ErrNoSuggestions so
// callers can show a notice and carry on.
func (e *Editor) Suggest(ctx context.Context, job models.JobContext) (int, error) {
	if !e.suggesting.CompareAndSwap(false, true) {
		return 0, ErrSuggestInProgress
	}
	defer e.suggesting.Store(false)

	if e.suggester == nil {
		return 0, fmt.Errorf("%w: suggestions are not configured", ErrNoSuggestions)
	}

	suggestions, err := e.suggester.SuggestFields(ctx, job)
	if err != nil {
		e.log.Warn("field suggestion failed", zap.Error(err))
		return 0, fmt.Errorf("%w: %w", ErrNoSuggestions, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	merged, added := MergeSuggestions(e.draft, suggestions)
	if added == 0 {
		return 0, ErrNoSuggestions
	}
	e.draft = merged
	e.touch()
	e.log.Info("field suggestions merged", zap.Int("added", added))
	return added, nil
}

// Save validates the whole draft and, if it is valid, replaces the persisted
// schema with it. Validation failures return a *formfield.SchemaError before
// the store is contacted. Store failures return ErrSaveFailed and keep the
// draft as it was.
func (e *Editor) Save(ctx context.Context) ([]models.FieldDefinition, error) {
	if !e.saving.CompareAndSwap(false, true) {
		return nil, ErrSaveInProgress
	}
	defer e.saving.Store(false)

	e.mu.Lock()
	defs := e.draft.Finalize()
	jobID := e.draft.JobPostingID
	rev := e.revision
	seq := e.draft.NextSeq
	e.mu.Unlock()

	if err := formfield.ValidateSchema(defs); err != nil {
		return nil, err
	}

	e.setState(StateSaving)
	saved, err := e.store.ReplaceSchema(ctx, jobID, defs)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.state = StateEditing
		e.log.Error("saving form schema failed", zap.Error(err), zap.Int("fields", len(defs)))
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	e.baseline = cloneDefinitions(saved)
	if e.revision == rev {
		e.draft = NewDraft(jobID, saved)
		e.draft.NextSeq = seq
		e.state = StateLoaded
	} else {
		// edited while the save was in flight; keep those edits
		e.state = StateEditing
	}
	e.log.Info("form schema saved", zap.Int("fields", len(saved)))
	return cloneDefinitions(saved), nil
}

func (e *Editor) edit(fn func(d *Draft) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	next := e.draft.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	e.draft = next
	e.touch()
	return nil
}

// touch records a change; mu must be held.
func (e *Editor) touch() {
	e.revision++
	if e.state != StateSaving {
		e.state = StateEditing
	}
}

func (e *Editor) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

func cloneDefinitions(defs []models.FieldDefinition) []models.FieldDefinition {
	if defs == nil {
		return nil
	}
	out := make([]models.FieldDefinition, len(defs))
	for i, d := range defs {
		out[i] = cloneDefinition(d)
	}
	return out
}
