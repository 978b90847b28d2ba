package postgres_test

import (
	"context"
	"os"
	"testing"

	"jobform-api/internal/database"
	"jobform-api/internal/models"
	"jobform-api/internal/storage"
	"jobform-api/internal/storage/postgres"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// getTestPool connects to TEST_DATABASE_URL and migrates it. Tests are
// skipped when it is not set.
func getTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL environment variable not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool, zap.NewNop()))
	_, err = pool.Exec(ctx, `TRUNCATE job_form_fields, job_postings`)
	require.NoError(t, err, "Failed to truncate tables")
	return pool
}

func createTestJobPosting(t *testing.T, ctx context.Context, pool *pgxpool.Pool) *models.JobPosting {
	t.Helper()
	job, err := postgres.NewJobPostingRepo(pool, nil).Create(ctx, &models.JobPosting{
		EmployerID:   uuid.New(),
		Title:        "Backend Engineer",
		Description:  "Payments team",
		Requirements: "Go",
	})
	require.NoError(t, err)
	return job
}

func ptr(s string) *string { return &s }

func scenarioFields() []models.FieldDefinition {
	return []models.FieldDefinition{
		{Name: "years_of_experience", Label: "Years of experience", Type: models.FieldTypeNumber, Required: true, Order: 7},
		{Name: "preferred_start_date", Label: "Preferred start date", Type: models.FieldTypeDate, Placeholder: ptr("2025-01-01")},
		{Name: "seniority", Label: "Seniority", Type: models.FieldTypeSelect, Options: []string{"Junior", "Senior"}},
	}
}

func TestFormFieldRepo_ReplaceAndList(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()
	job := createTestJobPosting(t, ctx, pool)
	repo := postgres.NewFormFieldRepo(pool, nil)

	empty, err := repo.ListByJobPosting(ctx, job.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	saved, err := repo.ReplaceAll(ctx, job.ID, scenarioFields())
	require.NoError(t, err)
	require.Len(t, saved, 3)
	for i, f := range saved {
		assert.Equal(t, i, f.Order)
		assert.Equal(t, job.ID, f.JobPostingID)
		assert.NotEqual(t, uuid.Nil, f.ID)
	}

	listed, err := repo.ListByJobPosting(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, listed)
	assert.Equal(t, "2025-01-01", *listed[1].Placeholder)
	assert.Nil(t, listed[0].HelpText)
	assert.Equal(t, []string{"Junior", "Senior"}, listed[2].Options)
}

func TestFormFieldRepo_ReplaceIsIdempotent(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()
	job := createTestJobPosting(t, ctx, pool)
	repo := postgres.NewFormFieldRepo(pool, nil)

	_, err := repo.ReplaceAll(ctx, job.ID, scenarioFields())
	require.NoError(t, err)
	first, err := repo.ListByJobPosting(ctx, job.ID)
	require.NoError(t, err)

	_, err = repo.ReplaceAll(ctx, job.ID, scenarioFields())
	require.NoError(t, err)
	second, err := repo.ListByJobPosting(ctx, job.ID)
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Label, second[i].Label)
		assert.Equal(t, first[i].Type, second[i].Type)
		assert.Equal(t, first[i].Order, second[i].Order)
		assert.Equal(t, first[i].Options, second[i].Options)
	}

	_, err = repo.ReplaceAll(ctx, job.ID, nil)
	require.NoError(t, err)
	cleared, err := repo.ListByJobPosting(ctx, job.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

func TestFormFieldRepo_FailedReplaceKeepsPreviousSet(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()
	job := createTestJobPosting(t, ctx, pool)
	repo := postgres.NewFormFieldRepo(pool, nil)

	_, err := repo.ReplaceAll(ctx, job.ID, scenarioFields())
	require.NoError(t, err)

	dup := []models.FieldDefinition{
		{Name: "same", Label: "One", Type: models.FieldTypeText},
		{Name: "same", Label: "Two", Type: models.FieldTypeText},
	}
	_, err = repo.ReplaceAll(ctx, job.ID, dup)
	assert.ErrorIs(t, err, storage.ErrConflict)

	listed, err := repo.ListByJobPosting(ctx, job.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 3)
}

func TestFormFieldRepo_UnknownJobPosting(t *testing.T) {
	pool := getTestPool(t)
	repo := postgres.NewFormFieldRepo(pool, nil)

	_, err := repo.ReplaceAll(context.Background(), uuid.New(), scenarioFields())

	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestJobPostingRepo_DeleteCascadesFields(t *testing.T) {
	pool := getTestPool(t)
	ctx := context.Background()
	job := createTestJobPosting(t, ctx, pool)
	jobs := postgres.NewJobPostingRepo(pool, nil)
	fields := postgres.NewFormFieldRepo(pool, nil)

	_, err := fields.ReplaceAll(ctx, job.ID, scenarioFields())
	require.NoError(t, err)

	got, err := jobs.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Title, got.Title)

	require.NoError(t, jobs.Delete(ctx, job.ID))

	_, err = jobs.GetByID(ctx, job.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.ErrorIs(t, jobs.Delete(ctx, job.ID), storage.ErrNotFound)

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_form_fields WHERE job_posting_id = $1`, job.ID).Scan(&count))
	assert.Zero(t, count)
}
