package routes_test

import (
	"context"
	"time"

	"jobform-api/internal/editor"
	"jobform-api/internal/models"
	"jobform-api/internal/renderer"
	"jobform-api/internal/services"
	"jobform-api/internal/storage"
	"jobform-api/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func generateTestToken(userID uuid.UUID, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)
	claims := &jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(expirationTime),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// MockJobPostingService is a mock type for the services.JobPostingService interface
type MockJobPostingService struct {
	mock.Mock
}

func (m *MockJobPostingService) CreateJobPosting(ctx context.Context, req *dto.CreateJobPostingRequest) (*models.JobPosting, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobPostingService) GetJobPosting(ctx context.Context, id uuid.UUID) (*models.JobPosting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.JobPosting), args.Error(1)
}

func (m *MockJobPostingService) DeleteJobPosting(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
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

// MockSubmissionService is a mock type for the services.SubmissionService interface
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) RenderForm(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, []renderer.Widget, error) {
	args := m.Called(ctx, jobID)
	var defs []models.FieldDefinition
	if v := args.Get(0); v != nil {
		defs = v.([]models.FieldDefinition)
	}
	var widgets []renderer.Widget
	if v := args.Get(1); v != nil {
		widgets = v.([]renderer.Widget)
	}
	return defs, widgets, args.Error(2)
}

func (m *MockSubmissionService) Submit(ctx context.Context, jobID uuid.UUID, answers map[string]any) (renderer.Bundle, error) {
	args := m.Called(ctx, jobID, answers)
	if args.Get(0) == nil {
		return renderer.Bundle{}, args.Error(1)
	}
	return args.Get(0).(renderer.Bundle), args.Error(1)
}

// MockDraftService is a mock type for the services.DraftService interface
type MockDraftService struct {
	mock.Mock
}

func (m *MockDraftService) session(args mock.Arguments) (*storage.DraftSession, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.DraftSession), args.Error(1)
}

func (m *MockDraftService) Open(ctx context.Context, jobID, userID uuid.UUID) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, jobID, userID))
}

func (m *MockDraftService) Get(ctx context.Context, draftID, userID uuid.UUID) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID))
}

func (m *MockDraftService) AddField(ctx context.Context, draftID, userID uuid.UUID) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID))
}

func (m *MockDraftService) UpdateField(ctx context.Context, draftID, userID uuid.UUID, index int, patch editor.FieldPatch) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID, index, patch))
}

func (m *MockDraftService) RemoveField(ctx context.Context, draftID, userID uuid.UUID, index int) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID, index))
}

func (m *MockDraftService) MoveField(ctx context.Context, draftID, userID uuid.UUID, from, to int) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID, from, to))
}

func (m *MockDraftService) ReorderFields(ctx context.Context, draftID, userID uuid.UUID, order []int) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID, order))
}

func (m *MockDraftService) AddOption(ctx context.Context, draftID, userID uuid.UUID, index int, value string) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID, index, value))
}

func (m *MockDraftService) UpdateOption(ctx context.Context, draftID, userID uuid.UUID, index, option int, value string) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID, index, option, value))
}

func (m *MockDraftService) RemoveOption(ctx context.Context, draftID, userID uuid.UUID, index, option int) (*storage.DraftSession, error) {
	return m.session(m.Called(ctx, draftID, userID, index, option))
}

func (m *MockDraftService) Suggest(ctx context.Context, draftID, userID uuid.UUID) (*services.SuggestResult, error) {
	args := m.Called(ctx, draftID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SuggestResult), args.Error(1)
}

func (m *MockDraftService) Save(ctx context.Context, draftID, userID uuid.UUID) (*services.SaveResult, error) {
	args := m.Called(ctx, draftID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SaveResult), args.Error(1)
}

func (m *MockDraftService) Discard(ctx context.Context, draftID, userID uuid.UUID) error {
	return m.Called(ctx, draftID, userID).Error(0)
}

var (
	_ services.JobPostingService = (*MockJobPostingService)(nil)
	_ services.FormSchemaService = (*MockFormSchemaService)(nil)
	_ services.SubmissionService = (*MockSubmissionService)(nil)
	_ services.DraftService      = (*MockDraftService)(nil)
)
