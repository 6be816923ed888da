package user

import "context"

// Repository defines the interface for user data access.
// Create must rely on the store's uniqueness constraint for usernames and
// return ErrUsernameTaken on a duplicate insert, so that two racing signups
// cannot both succeed.
type Repository interface {
	Create(ctx context.Context, params CreateUserParams) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Delete(ctx context.Context, id string) error
}
