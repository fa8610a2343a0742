package user

import (
	"strings"

	"audio-vault-api/internal/domain/user"
)

// Provider tokens stay server side, they never appear in a response.
func ToResponseUser(uDomain user.User) User {
	var u = User{
		UUID:        uDomain.UUID,
		Email:       uDomain.Email,
		Name:        uDomain.Name,
		YandexID:    uDomain.YandexID,
		IsActive:    uDomain.IsActive,
		IsSuperuser: uDomain.IsSuperuser,
		CreatedAt:   uDomain.CreatedAt,
	}

	return u
}

func ToResponseUsers(usDomain user.Users) Users {
	us := make(Users, len(usDomain))
	for idx, u := range usDomain {
		us[idx] = ToResponseUser(*u)
	}

	return us
}

func ToDomainUser(uRequest Request) user.User {
	return user.User{
		Email: strings.ToLower(strings.TrimSpace(uRequest.Email)),
		Name:  strings.TrimSpace(uRequest.Name),
	}
}
