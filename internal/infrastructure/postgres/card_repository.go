package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"cardvault/internal/domain/card"
)

type CardRepository struct {
	db *DB
}

func NewCardRepository(db *DB) *CardRepository {
	return &CardRepository{db: db}
}

const cardColumns = `id, user_id, name, set_name, card_number, image_url, is_graded, grading,
		condition, purchase_price, estimated_value, quantity, notes, tags, created_at, updated_at`

func (r *CardRepository) Create(ctx context.Context, userID string, params card.CreateCardParams) (*card.Card, error) {
	condition := params.Condition
	if condition == "" {
		condition = card.DefaultCondition
	}

	quantity := 1
	if params.Quantity != nil {
		quantity = *params.Quantity
	}

	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	grading, err := marshalGrading(params.Grading)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO cards (id, user_id, name, set_name, card_number, image_url, is_graded, grading,
			condition, purchase_price, estimated_value, quantity, notes, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + cardColumns

	row := r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), userID, params.Name, params.Set, params.CardNumber, params.ImageURL,
		params.IsGraded, grading, condition, params.PurchasePrice, params.EstimatedValue,
		quantity, params.Notes, pq.Array(tags),
	)

	c, err := scanCard(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	return c, nil
}

// GetByID looks a card up under its owner. A card that exists under another
// user yields ErrCardNotFound, same as one that does not exist at all.
func (r *CardRepository) GetByID(ctx context.Context, userID, id string) (*card.Card, error) {
	query := `SELECT ` + cardColumns + `
		FROM cards
		WHERE id = $1 AND user_id = $2`

	c, err := scanCard(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, card.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	return c, nil
}

func (r *CardRepository) ListByUserID(ctx context.Context, userID string) ([]*card.Card, error) {
	query := `SELECT ` + cardColumns + `
		FROM cards
		WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	defer rows.Close()

	var cards []*card.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cards: %w", err)
	}

	return cards, nil
}

func (r *CardRepository) Update(ctx context.Context, userID, id string, params card.UpdateCardParams) (*card.Card, error) {
	grading, err := marshalGrading(params.Grading)
	if err != nil {
		return nil, err
	}

	// tags stays NULL when the caller omitted it, so COALESCE keeps the
	// stored value. Owner and id are never part of the SET list.
	var tags interface{}
	if params.Tags != nil {
		tags = pq.Array(params.Tags)
	}

	query := `
		UPDATE cards
		SET name = COALESCE($1, name),
		    set_name = COALESCE($2, set_name),
		    card_number = COALESCE($3, card_number),
		    image_url = COALESCE($4, image_url),
		    is_graded = COALESCE($5, is_graded),
		    grading = COALESCE($6, grading),
		    condition = COALESCE($7, condition),
		    purchase_price = COALESCE($8, purchase_price),
		    estimated_value = COALESCE($9, estimated_value),
		    quantity = COALESCE($10, quantity),
		    notes = COALESCE($11, notes),
		    tags = COALESCE($12, tags),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $13 AND user_id = $14
		RETURNING ` + cardColumns

	row := r.db.QueryRowContext(
		ctx, query,
		params.Name, params.Set, params.CardNumber, params.ImageURL, params.IsGraded,
		grading, params.Condition, params.PurchasePrice, params.EstimatedValue,
		params.Quantity, params.Notes, tags, id, userID,
	)

	c, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, card.ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}

	return c, nil
}

func (r *CardRepository) Delete(ctx context.Context, userID, id string) error {
	query := `DELETE FROM cards WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if rows == 0 {
		return card.ErrCardNotFound
	}

	return nil
}

func marshalGrading(g *card.Grading) (interface{}, error) {
	if g == nil {
		return nil, nil
	}
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal grading: %w", err)
	}
	return data, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*card.Card, error) {
	var c card.Card
	var grading []byte

	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Set, &c.CardNumber, &c.ImageURL, &c.IsGraded, &grading,
		&c.Condition, &c.PurchasePrice, &c.EstimatedValue, &c.Quantity, &c.Notes,
		pq.Array(&c.Tags), &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(grading) > 0 {
		c.Grading = &card.Grading{}
		if err := json.Unmarshal(grading, c.Grading); err != nil {
			return nil, fmt.Errorf("failed to unmarshal grading: %w", err)
		}
	}

	if c.Tags == nil {
		c.Tags = []string{}
	}

	return &c, nil
}
