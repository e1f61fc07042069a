package mapper

import (
	"time"

	"ai-vocabcoach-be/internal/entity"
	"ai-vocabcoach-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}

	var updatedAt *time.Time
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		updatedAt = &t
	}

	return &entity.User{
		Id:              u.Id,
		Username:        u.Username,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		PreferredName:   u.PreferredName,
		WordsPerSession: u.WordsPerSession,
		IsAdmin:         u.IsAdmin,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *UserMapper) ToEntities(models []*model.User) []*entity.User {
	entities := make([]*entity.User, 0, len(models))
	for _, u := range models {
		entities = append(entities, m.ToEntity(u))
	}
	return entities
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	var updatedAt time.Time
	if u.UpdatedAt != nil {
		updatedAt = *u.UpdatedAt
	}

	return &model.User{
		Id:              u.Id,
		Username:        u.Username,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		PreferredName:   u.PreferredName,
		WordsPerSession: u.WordsPerSession,
		IsAdmin:         u.IsAdmin,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}
