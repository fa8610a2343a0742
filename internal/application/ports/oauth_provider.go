package ports

import (
	"context"

	"golang.org/x/oauth2"

	"audio-vault-api/internal/infrastructure/yandex"
)

type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	UserInfo(ctx context.Context, accessToken string) (*yandex.Profile, error)
}
