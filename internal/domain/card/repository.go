package card

import "context"

// Repository defines the interface for card data access. Every operation is
// scoped to an owning user: a card that exists under a different owner is
// indistinguishable from one that does not exist at all.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateCardParams) (*Card, error)
	GetByID(ctx context.Context, userID, id string) (*Card, error)
	ListByUserID(ctx context.Context, userID string) ([]*Card, error)
	Update(ctx context.Context, userID, id string, params UpdateCardParams) (*Card, error)
	Delete(ctx context.Context, userID, id string) error
}
