package ports

import (
	"context"

	"audio-vault-api/internal/domain/user"
)

// AuthResult is what a successful login yields: the reconciled local user and
// a freshly issued bearer token whose sub claim is that user's id.
type AuthResult struct {
	User  *user.User
	Token string
}

type AuthService interface {
	// LoginURL builds the provider authorization page URL.
	LoginURL(state string) string
	// AuthenticateWithProviderToken runs the token-forwarding flow: the
	// caller already holds a provider access token.
	AuthenticateWithProviderToken(ctx context.Context, providerToken string) (*AuthResult, error)
	// AuthenticateWithCode runs the authorization-code flow end to end.
	AuthenticateWithCode(ctx context.Context, code string) (*AuthResult, error)
}
