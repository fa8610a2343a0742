package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	UUID = uuid.UUID
	User struct {
		UUID     UUID
		Email    string
		Name     string
		YandexID string

		IsActive    bool
		IsSuperuser bool

		AccessToken  string
		RefreshToken string
		TokenExpires int64 // epoch seconds

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Users []*User
)
