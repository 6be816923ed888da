package binder

import "context"

// Repository defines the interface for binder data access. All operations are
// scoped to the owning user; absence and foreign ownership both surface as
// ErrBinderNotFound.
type Repository interface {
	Create(ctx context.Context, userID string, params CreateBinderParams) (*Binder, error)
	GetByID(ctx context.Context, userID, id string) (*Binder, error)
	ListByUserID(ctx context.Context, userID string) ([]*Binder, error)
	Update(ctx context.Context, userID, id string, params UpdateBinderParams) (*Binder, error)
	Delete(ctx context.Context, userID, id string) error
}
