package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"cardvault/internal/domain/binder"
)

type BinderRepository struct {
	db *DB
}

func NewBinderRepository(db *DB) *BinderRepository {
	return &BinderRepository{db: db}
}

const binderColumns = `id, user_id, name, rows, columns, slots, created_at, updated_at`

func (r *BinderRepository) Create(ctx context.Context, userID string, params binder.CreateBinderParams) (*binder.Binder, error) {
	slots, err := json.Marshal(binder.NewSlots(params.Rows, params.Columns))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal slots: %w", err)
	}

	query := `
		INSERT INTO binders (id, user_id, name, rows, columns, slots)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + binderColumns

	row := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), userID, params.Name, params.Rows, params.Columns, slots,
	)

	b, err := scanBinder(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create binder: %w", err)
	}

	return b, nil
}

func (r *BinderRepository) GetByID(ctx context.Context, userID, id string) (*binder.Binder, error) {
	query := `SELECT ` + binderColumns + `
		FROM binders
		WHERE id = $1 AND user_id = $2`

	b, err := scanBinder(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, binder.ErrBinderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get binder: %w", err)
	}

	return b, nil
}

// ListByUserID returns the user's binders newest first.
func (r *BinderRepository) ListByUserID(ctx context.Context, userID string) ([]*binder.Binder, error) {
	query := `SELECT ` + binderColumns + `
		FROM binders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list binders: %w", err)
	}
	defer rows.Close()

	var binders []*binder.Binder
	for rows.Next() {
		b, err := scanBinder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan binder: %w", err)
		}
		binders = append(binders, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating binders: %w", err)
	}

	return binders, nil
}

func (r *BinderRepository) Update(ctx context.Context, userID, id string, params binder.UpdateBinderParams) (*binder.Binder, error) {
	var slots interface{}
	if params.Slots != nil {
		data, err := json.Marshal(params.Slots)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal slots: %w", err)
		}
		slots = data
	}

	query := `
		UPDATE binders
		SET name = COALESCE($1, name),
		    rows = COALESCE($2, rows),
		    columns = COALESCE($3, columns),
		    slots = COALESCE($4, slots),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $5 AND user_id = $6
		RETURNING ` + binderColumns

	row := r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Rows, params.Columns, slots, id, userID,
	)

	b, err := scanBinder(row)
	if err == sql.ErrNoRows {
		return nil, binder.ErrBinderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update binder: %w", err)
	}

	return b, nil
}

func (r *BinderRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM binders WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete binder: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return binder.ErrBinderNotFound
	}

	return nil
}

func scanBinder(row rowScanner) (*binder.Binder, error) {
	var b binder.Binder
	var slots []byte

	err := row.Scan(
		&b.ID, &b.UserID, &b.Name, &b.Rows, &b.Columns, &slots,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(slots, &b.Slots); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slots: %w", err)
	}

	return &b, nil
}
