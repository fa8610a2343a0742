package ports

import (
	"context"

	"audio-vault-api/internal/domain/user"
)

type UserService interface {
	FindUserByID(ctx context.Context, uuid user.UUID) (*user.User, error)
	FindUsers(ctx context.Context, page int) (user.Users, error)
	UpdateUser(ctx context.Context, u user.User) (*user.User, error)
	// DeleteUser removes the user together with its audio rows and disk
	// bytes. Returns false when no such user exists.
	DeleteUser(ctx context.Context, uuid user.UUID) (bool, error)
}
