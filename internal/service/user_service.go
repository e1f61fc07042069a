package service

import (
	"context"

	"ai-vocabcoach-be/internal/config"
	"ai-vocabcoach-be/internal/dto"
	"ai-vocabcoach-be/internal/repository/specification"
	"ai-vocabcoach-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	cfg        config.PracticeConfig
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, cfg config.PracticeConfig) IUserService {
	return &userService{
		uowFactory: uowFactory,
		cfg:        cfg,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	wordsPerSession := s.cfg.DefaultWordsPerSession
	if user.WordsPerSession != nil {
		wordsPerSession = *user.WordsPerSession
	}

	preferredName := ""
	if user.PreferredName != nil {
		preferredName = *user.PreferredName
	}

	return &dto.UserProfileResponse{
		Id:              user.Id,
		Username:        user.Username,
		Email:           user.Email,
		PreferredName:   preferredName,
		WordsPerSession: wordsPerSession,
		CreatedAt:       user.CreatedAt,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	users := uow.UserRepository()

	user, err := users.FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := users.UpdatePreferences(ctx, userId, req.PreferredName, req.WordsPerSession); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userId)
}
