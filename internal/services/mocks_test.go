package services_test

import (
	"context"
	"sync"

	"jobform-api/internal/models"
	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

// MockJobPostingRepository is a mock type for the storage.JobPostingRepository interface
type MockJobPostingRepository struct {
	mock.Mock
}

func (m *MockJobPostingRepository) Create(ctx context.Context, job *models.JobPosting) (*models.JobPosting, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobPostingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobPostingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the same mock so expectations hold inside transactions.
func (m *MockJobPostingRepository) WithTx(tx pgx.Tx) storage.JobPostingRepository {
	return m
}

// MockFormFieldRepository is a mock type for the storage.FormFieldRepository interface
type MockFormFieldRepository struct {
	mock.Mock
}

func (m *MockFormFieldRepository) ListByJobPosting(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FieldDefinition), args.Error(1)
}

func (m *MockFormFieldRepository) ReplaceAll(ctx context.Context, jobID uuid.UUID, fields []models.FieldDefinition) ([]models.FieldDefinition, error) {
	args := m.Called(ctx, jobID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FieldDefinition), args.Error(1)
}

func (m *MockFormFieldRepository) WithTx(tx pgx.Tx) storage.FormFieldRepository {
	return m
}

// MockSchemaCache is a mock type for the storage.SchemaCache interface
type MockSchemaCache struct {
	mock.Mock
}

func (m *MockSchemaCache) Get(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, bool, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]models.FieldDefinition), args.Bool(1), args.Error(2)
}

func (m *MockSchemaCache) Generation(ctx context.Context, jobID uuid.UUID) (int64, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSchemaCache) Set(ctx context.Context, jobID uuid.UUID, gen int64, fields []models.FieldDefinition) (bool, error) {
	args := m.Called(ctx, jobID, gen, fields)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchemaCache) Invalidate(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

// MockFormSchemaService is a mock type for the services.FormSchemaService interface
type MockFormSchemaService struct {
	mock.Mock
}

func (m *MockFormSchemaService) LoadSchema(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FieldDefinition), args.Error(1)
}

func (m *MockFormSchemaService) ReplaceSchema(ctx context.Context, jobID uuid.UUID, fields []models.FieldDefinition) ([]models.FieldDefinition, error) {
	args := m.Called(ctx, jobID, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FieldDefinition), args.Error(1)
}

func (m *MockFormSchemaService) Authorize(ctx context.Context, jobID, userID uuid.UUID) (*models.JobPosting, error) {
	args := m.Called(ctx, jobID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

// MockSuggester is a mock type for the editor.Suggester interface
type MockSuggester struct {
	mock.Mock
}

func (m *MockSuggester) SuggestFields(ctx context.Context, job models.JobContext) ([]models.FieldSuggestion, error) {
	args := m.Called(ctx, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FieldSuggestion), args.Error(1)
}

// MockTxBeginner hands out fakeTx values.
type MockTxBeginner struct {
	mock.Mock
}

func (m *MockTxBeginner) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

// fakeTx records commit and rollback; every other pgx.Tx method panics.
type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.committed = true
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	if !tx.committed {
		tx.rolledBack = true
	}
	return nil
}

// memDrafts is an in-memory storage.DraftRepository.
type memDrafts struct {
	mu      sync.Mutex
	drafts  map[uuid.UUID]storage.DraftSession
	locked  map[uuid.UUID]bool
	saveErr error
	saves   int
}

func newMemDrafts() *memDrafts {
	return &memDrafts{drafts: map[uuid.UUID]storage.DraftSession{}, locked: map[uuid.UUID]bool{}}
}

func (r *memDrafts) Save(ctx context.Context, d *storage.DraftSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.drafts[d.ID] = *d
	return nil
}

func (r *memDrafts) Get(ctx context.Context, id uuid.UUID) (*storage.DraftSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &d, nil
}

func (r *memDrafts) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drafts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.drafts, id)
	return nil
}

func (r *memDrafts) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked[id] {
		return nil, storage.ErrLocked
	}
	r.locked[id] = true
	return func() {
		r.mu.Lock()
		delete(r.locked, id)
		r.mu.Unlock()
	}, nil
}

// memSchemaCache is an in-memory storage.SchemaCache with generation checks.
type memSchemaCache struct {
	mu     sync.Mutex
	fields map[uuid.UUID][]models.FieldDefinition
	gens   map[uuid.UUID]int64
}

func newMemSchemaCache() *memSchemaCache {
	return &memSchemaCache{fields: map[uuid.UUID][]models.FieldDefinition{}, gens: map[uuid.UUID]int64{}}
}

func (c *memSchemaCache) Get(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.fields[jobID]
	return f, ok, nil
}

func (c *memSchemaCache) Generation(ctx context.Context, jobID uuid.UUID) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[jobID], nil
}

func (c *memSchemaCache) Set(ctx context.Context, jobID uuid.UUID, gen int64, fields []models.FieldDefinition) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[jobID] != gen {
		return false, nil
	}
	c.fields[jobID] = fields
	return true, nil
}

func (c *memSchemaCache) Invalidate(ctx context.Context, jobID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[jobID]++
	delete(c.fields, jobID)
	return nil
}

// hookedFieldRepo is a FormFieldRepository whose list can run a hook after it
// has read its rows and before it returns them.
type hookedFieldRepo struct {
	mu        sync.Mutex
	rows      []models.FieldDefinition
	afterRead func()
}

func (r *hookedFieldRepo) ListByJobPosting(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, error) {
	r.mu.Lock()
	rows := append([]models.FieldDefinition(nil), r.rows...)
	hook := r.afterRead
	r.afterRead = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}
	return rows, nil
}

func (r *hookedFieldRepo) ReplaceAll(ctx context.Context, jobID uuid.UUID, fields []models.FieldDefinition) ([]models.FieldDefinition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append([]models.FieldDefinition(nil), fields...)
	return fields, nil
}

func (r *hookedFieldRepo) WithTx(tx pgx.Tx) storage.FormFieldRepository {
	return r
}
