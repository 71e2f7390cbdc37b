package mapper

import (
	"airport-assistant-be/internal/entity"
	"airport-assistant-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(username string, u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Username:           username,
		Email:              u.Email,
		PasswordHash:       u.PasswordHash,
		LegacyPasswordHash: u.LegacyPassword,
	}
}

func (m *UserMapper) ToModel(u *entity.User) model.User {
	return model.User{
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		LegacyPassword: u.LegacyPasswordHash,
	}
}
