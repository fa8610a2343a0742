package rest

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audio-vault-api/config"
	"audio-vault-api/internal/application/ports"
	userDB "audio-vault-api/internal/infrastructure/db/postgres/user"
	"audio-vault-api/internal/infrastructure/yandex"
	"audio-vault-api/internal/interface/api/rest/dto/auth"
)

type AuthController struct {
	logger      *zap.Logger
	cfg         config.Yandex
	authService ports.AuthService
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	cfg config.Yandex,
	authService ports.AuthService,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		cfg:         cfg,
		authService: authService,
	}

	r.POST(RouteAuthYandex, ac.LoginHandler)
	r.GET(RouteAuthYandexLogin, ac.LoginRedirectHandler)
	r.GET(RouteAuthYandexCallback, ac.CallbackHandler)

	return ac
}

// LoginHandler is the token-forwarding flow: the body carries a Yandex access
// token the client already holds.
func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}
	if strings.TrimSpace(req.AccessToken) == "" {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "access_token is required"},
		)
		return
	}

	res, err := ac.authService.AuthenticateWithProviderToken(c.Request.Context(), req.AccessToken)
	if err != nil {
		ac.writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, auth.ToTokenResponse(*res))
}

// LoginRedirectHandler starts the authorization-code flow by sending the
// browser to the Yandex authorize page.
func (ac *AuthController) LoginRedirectHandler(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to start login"},
		)
		ac.logger.Error("randomState() error", zap.Error(err))
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, ac.authService.LoginURL(state))
}

// CallbackHandler finishes the authorization-code flow and hands the issued
// token to the frontend via a redirect.
func (ac *AuthController) CallbackHandler(c *gin.Context) {
	if provErr := c.Query("error"); provErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   provErr,
			"details": c.Query("error_description"),
		})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "code is required"},
		)
		return
	}

	res, err := ac.authService.AuthenticateWithCode(c.Request.Context(), code)
	if err != nil {
		ac.writeAuthError(c, err)
		return
	}

	q := url.Values{}
	q.Set("token", res.Token)
	q.Set("user_id", res.User.UUID.String())
	c.Redirect(
		http.StatusTemporaryRedirect,
		ac.cfg.FrontendURL+"/oauth-callback?"+q.Encode(),
	)
}

func (ac *AuthController) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, yandex.ErrProviderUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": yandex.ErrProviderUnavailable.Error()})
	case errors.Is(err, yandex.ErrProviderDenied), errors.Is(err, yandex.ErrIncompleteProfile):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "yandex authentication failed"})
	case errors.Is(err, userDB.ErrUserConflict):
		c.JSON(http.StatusConflict, gin.H{"error": userDB.ErrUserConflict.Error()})
	default:
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to authenticate"},
		)
		ac.logger.Error("authenticate error", zap.Error(err))
	}
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
