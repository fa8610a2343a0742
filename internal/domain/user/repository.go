package user

import (
	"context"
)

type Repository interface {
	FetchUserByID(ctx context.Context, uuid UUID) (*User, error)
	FetchUsers(ctx context.Context, page int) (Users, error)
	// ReconcileProviderLogin finds a user by yandex id or email and refreshes
	// its provider credentials, creating the row when no match exists. The
	// whole operation runs in a single transaction; a concurrent insert for
	// the same identity surfaces ErrUserConflict.
	ReconcileProviderLogin(ctx context.Context, req User) (*User, error)
	UpdateUser(ctx context.Context, req User) (*User, error)
	DeleteUser(ctx context.Context, uuid UUID) (*User, error)
}
