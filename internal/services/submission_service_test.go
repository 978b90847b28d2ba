package services_test

import (
	"context"
	"errors"
	"testing"

	"jobform-api/internal/models"
	"jobform-api/internal/renderer"
	"jobform-api/internal/services"
	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupSubmissionServiceTest(jobID uuid.UUID) (context.Context, services.SubmissionService, *MockFormSchemaService, *MockJobPostingRepository) {
	schemas := new(MockFormSchemaService)
	jobs := new(MockJobPostingRepository)
	jobs.On("GetByID", mock.Anything, jobID).Return(&models.JobPosting{ID: jobID}, nil)
	schemas.On("LoadSchema", mock.Anything, jobID).Return(storedFields(jobID), nil)
	return context.Background(), services.NewSubmissionService(schemas, jobs, nil), schemas, jobs
}

func TestSubmissionService_RenderForm(t *testing.T) {
	jobID := uuid.New()
	ctx, svc, _, _ := setupSubmissionServiceTest(jobID)

	defs, widgets, err := svc.RenderForm(ctx, jobID)

	require.NoError(t, err)
	require.Len(t, widgets, 2)
	assert.Len(t, defs, 2)
	assert.Equal(t, renderer.WidgetInput, widgets[0].Widget)
	assert.Equal(t, "number", widgets[0].InputType)
	assert.Equal(t, renderer.WidgetDatePicker, widgets[1].Widget)
}

func TestSubmissionService_SubmitScenario(t *testing.T) {
	jobID := uuid.New()
	ctx, svc, _, _ := setupSubmissionServiceTest(jobID)

	_, err := svc.Submit(ctx, jobID, map[string]any{"years_of_experience": ""})
	assert.ErrorIs(t, err, services.ErrValidation)
	var subErr *renderer.SubmissionError
	require.True(t, errors.As(err, &subErr))
	assert.Equal(t, []string{"Years of experience"}, subErr.Labels())

	bundle, err := svc.Submit(ctx, jobID, map[string]any{"years_of_experience": "5"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"years_of_experience": 5.0}, bundle.Map())
}

func TestSubmissionService_UnknownJobPosting(t *testing.T) {
	jobID := uuid.New()
	ctx, svc, schemas, jobs := setupSubmissionServiceTest(jobID)
	missing := uuid.New()
	jobs.On("GetByID", mock.Anything, missing).Return(nil, storage.ErrNotFound)

	_, err := svc.Submit(ctx, missing, map[string]any{})

	assert.ErrorIs(t, err, services.ErrNotFound)
	schemas.AssertNotCalled(t, "LoadSchema", mock.Anything, missing)
}
