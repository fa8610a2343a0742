package auth

import (
	"audio-vault-api/internal/application/ports"
	"audio-vault-api/internal/interface/api/rest/dto/user"
)

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        user.User `json:"user"`
}

func ToTokenResponse(res ports.AuthResult) TokenResponse {
	return TokenResponse{
		AccessToken: res.Token,
		TokenType:   "Bearer",
		User:        user.ToResponseUser(*res.User),
	}
}
