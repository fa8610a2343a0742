package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"audio-vault-api/internal/application/ports"
	domain "audio-vault-api/internal/domain/user"
	"audio-vault-api/internal/infrastructure/jwt"
	"audio-vault-api/internal/infrastructure/mq"
	"audio-vault-api/internal/infrastructure/yandex"
)

var ErrFailedToGenerateToken = errors.New("failed to generate token")

// Yandex does not report token lifetime on the user-info path; the original
// provider contract treats forwarded tokens as good for 30 days.
const providerTokenTTL = 30 * 24 * time.Hour

type AuthService struct {
	provider       ports.OAuthProvider
	userRepository domain.Repository
	jwtService     *jwt.Service
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
}

func NewAuthService(
	provider ports.OAuthProvider,
	userRepository domain.Repository,
	jwtService *jwt.Service,
	rbMQ ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.AuthService {
	return &AuthService{
		provider:       provider,
		userRepository: userRepository,
		jwtService:     jwtService,
		mq:             rbMQ,
		mCounter:       mCounter,
	}
}

func (as *AuthService) LoginURL(state string) string {
	return as.provider.AuthCodeURL(state)
}

func (as *AuthService) AuthenticateWithProviderToken(ctx context.Context, providerToken string) (*ports.AuthResult, error) {
	profile, err := as.provider.UserInfo(ctx, providerToken)
	if err != nil {
		return nil, err
	}

	return as.reconcile(ctx, profile, providerToken, time.Now().Add(providerTokenTTL).Unix())
}

func (as *AuthService) AuthenticateWithCode(ctx context.Context, code string) (*ports.AuthResult, error) {
	tok, err := as.provider.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	profile, err := as.provider.UserInfo(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}

	expires := tok.Expiry
	if expires.IsZero() {
		expires = time.Now().Add(providerTokenTTL)
	}

	return as.reconcile(ctx, profile, tok.AccessToken, expires.Unix())
}

// reconcile maps the provider profile onto a local user row and issues the
// bearer token for it.
func (as *AuthService) reconcile(
	ctx context.Context,
	profile *yandex.Profile,
	accessToken string,
	tokenExpires int64,
) (*ports.AuthResult, error) {
	u, err := as.userRepository.ReconcileProviderLogin(ctx, domain.User{
		Email:        profile.DefaultEmail,
		Name:         profile.Name(),
		YandexID:     profile.ID,
		AccessToken:  accessToken,
		RefreshToken: "", // Yandex does not issue one
		TokenExpires: tokenExpires,
	})
	if err != nil {
		return nil, err
	}

	token, err := as.jwtService.Issue(u.UUID.String())
	if err != nil {
		return nil, ErrFailedToGenerateToken
	}

	if as.mq != nil {
		as.mq.GetInputChan() <- mq.Event{
			Id:     uuid.New(),
			TS:     time.Now(),
			Action: mq.ActionUserLogin,
			UserID: u.UUID.String(),
		}
	}

	as.mCounter.WithLabelValues("user_logins_total").Inc()

	return &ports.AuthResult{User: u, Token: token}, nil
}
