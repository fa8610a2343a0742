package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		UUID     uuid.UUID
		Email    string
		Name     string
		YandexID string

		IsActive    bool
		IsSuperuser bool

		AccessToken  string
		RefreshToken string
		TokenExpires int64

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
