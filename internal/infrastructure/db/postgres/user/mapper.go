package user

import (
	domain "audio-vault-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		UUID:     model.UUID,
		Email:    model.Email,
		Name:     model.Name,
		YandexID: model.YandexID,

		IsActive:    model.IsActive,
		IsSuperuser: model.IsSuperuser,

		AccessToken:  model.AccessToken,
		RefreshToken: model.RefreshToken,
		TokenExpires: model.TokenExpires,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}

	return u
}

func fromDBModels(models *Users) domain.Users {
	us := make(domain.Users, len(*models))
	for idx, u := range *models {
		us[idx] = fromDBModel(u)
	}

	return us
}
