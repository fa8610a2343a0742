package auth

// LoginRequest is the token-forwarding flow body: the caller obtained a Yandex
// access token on its own and hands it over for verification.
type LoginRequest struct {
	AccessToken string `json:"access_token"`
}
