package binder

import (
	"context"
	"errors"
	"fmt"

	"cardvault/internal/domain/card"
)

// Service enforces the binder grid invariants on top of the repository:
// the slot grid always matches the binder's declared shape, and a newly
// written slot reference must resolve to a card with the same owner.
// References that were already present in the stored grid are exempt, so
// stale references left behind by card deletions do not block later updates.
type Service struct {
	binders Repository
	cards   card.Repository
}

func NewService(binders Repository, cards card.Repository) *Service {
	return &Service{binders: binders, cards: cards}
}

func (s *Service) Create(ctx context.Context, userID string, params CreateBinderParams) (*Binder, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSlots, err)
	}
	return s.binders.Create(ctx, userID, params)
}

func (s *Service) GetByID(ctx context.Context, userID, id string) (*Binder, error) {
	return s.binders.GetByID(ctx, userID, id)
}

func (s *Service) ListByUserID(ctx context.Context, userID string) ([]*Binder, error) {
	return s.binders.ListByUserID(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.binders.Delete(ctx, userID, id)
}

// Update applies a partial update after checking ownership and grid
// consistency. The shape is validated against the post-update row and column
// counts. When the dimensions change without a replacement grid, the stored
// grid is resized so the shape invariant holds, keeping every cell that still
// fits.
func (s *Service) Update(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error) {
	existing, err := s.binders.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	rows := existing.Rows
	if params.Rows != nil {
		rows = *params.Rows
	}
	columns := existing.Columns
	if params.Columns != nil {
		columns = *params.Columns
	}

	if params.Slots != nil {
		if err := params.Slots.ValidateShape(rows, columns); err != nil {
			return nil, err
		}
		if err := s.checkNewReferences(ctx, userID, existing.Slots, params.Slots); err != nil {
			return nil, err
		}
	} else if rows != existing.Rows || columns != existing.Columns {
		params.Slots = existing.Slots.Resize(rows, columns)
	}

	return s.binders.Update(ctx, userID, id, params)
}

// checkNewReferences verifies that every card id appearing in the new grid
// but not in the old one resolves to a card owned by the same user.
func (s *Service) checkNewReferences(ctx context.Context, userID string, old, updated Slots) error {
	existing := old.CardIDs()
	for cardID := range updated.CardIDs() {
		if existing[cardID] {
			continue
		}
		if _, err := s.cards.GetByID(ctx, userID, cardID); err != nil {
			if errors.Is(err, card.ErrCardNotFound) {
				return fmt.Errorf("%w: slot references card %s which does not exist or is not yours", ErrInvalidSlots, cardID)
			}
			return fmt.Errorf("failed to resolve slot reference %s: %w", cardID, err)
		}
	}
	return nil
}
