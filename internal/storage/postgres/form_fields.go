// internal/storage/postgres/form_fields.go
package postgres

import (
	"context"
	"fmt"

	"jobform-api/internal/models"
	"jobform-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const formFieldColumns = `id, job_posting_id, name, label, type, required, options, sort_order, placeholder, help_text, created_at`

// FormFieldRepo implements the storage.FormFieldRepository interface using PostgreSQL.
type FormFieldRepo struct {
	db  Querier
	log *zap.Logger
}

// NewFormFieldRepo creates a new FormFieldRepo.
func NewFormFieldRepo(db *pgxpool.Pool, log *zap.Logger) *FormFieldRepo {
	if log == nil {
		log = zap.NewNop()
	}
	return &FormFieldRepo{db: db, log: log}
}

// WithTx creates a new FormFieldRepo bound to the transaction.
func (r *FormFieldRepo) WithTx(tx pgx.Tx) storage.FormFieldRepository {
	return &FormFieldRepo{db: tx, log: r.log}
}

// Compile-time check to ensure FormFieldRepo implements FormFieldRepository
var _ storage.FormFieldRepository = (*FormFieldRepo)(nil)

// ListByJobPosting returns the job posting's fields by ascending order. A job
// posting without fields yields an empty slice.
func (r *FormFieldRepo) ListByJobPosting(ctx context.Context, jobID uuid.UUID) ([]models.FieldDefinition, error) {
	query := `SELECT ` + formFieldColumns + `
		FROM job_form_fields
		WHERE job_posting_id = $1
		ORDER BY sort_order`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		r.log.Error("querying form fields", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("failed to query form fields: %w", err)
	}
	defer rows.Close()

	fields, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.FieldDefinition])
	if err != nil {
		r.log.Error("scanning form fields", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("failed to scan form fields: %w", err)
	}

	if fields == nil {
		fields = []models.FieldDefinition{} // Return empty slice, not nil
	}
	return fields, nil
}

// ReplaceAll deletes the current fields and inserts the given list with
// sort_order set to the list position. Delete and inserts share one
// transaction.
func (r *FormFieldRepo) ReplaceAll(ctx context.Context, jobID uuid.UUID, fields []models.FieldDefinition) ([]models.FieldDefinition, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin replace transaction: %w", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	if _, err := tx.Exec(ctx, `DELETE FROM job_form_fields WHERE job_posting_id = $1`, jobID); err != nil {
		r.log.Error("deleting form fields", zap.Stringer("job_posting_id", jobID), zap.Error(err))
		return nil, fmt.Errorf("failed to delete form fields: %w", err)
	}

	query := `
		INSERT INTO job_form_fields (id, job_posting_id, name, label, type, required, options, sort_order, placeholder, help_text, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING ` + formFieldColumns

	saved := make([]models.FieldDefinition, 0, len(fields))
	for i, f := range fields {
		options := f.Options
		if options == nil {
			options = []string{}
		}
		rows, err := tx.Query(ctx, query,
			uuid.New(),
			jobID,
			f.Name,
			f.Label,
			f.Type,
			f.Required,
			options,
			i,
			f.Placeholder,
			f.HelpText,
		)
		if err != nil {
			return nil, mapPgError(err, "failed to insert form field")
		}
		row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.FieldDefinition])
		if err != nil {
			r.log.Error("inserting form field", zap.Stringer("job_posting_id", jobID), zap.String("name", f.Name), zap.Error(err))
			return nil, mapPgError(err, "failed to insert form field")
		}
		saved = append(saved, row)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, mapPgError(err, "failed to commit form fields")
	}

	r.log.Info("form fields replaced", zap.Stringer("job_posting_id", jobID), zap.Int("fields", len(saved)))
	return saved, nil
}
