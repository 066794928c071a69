package services

import (
	"context"

	"github.com/vlat-exam/api/internal/models"
	"github.com/vlat-exam/api/internal/repository"
	appErr "github.com/vlat-exam/api/pkg/errors"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListNewestFirst(ctx)
	if err != nil {
		logStoreError("list users failed", err)
		return nil, appErr.Wrap(err, appErr.CodeInternal, MsgDatabaseError)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.userRepo.GetByID(ctx, id, &u); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "User not found")
		}
		logStoreError("get user failed", err)
		return nil, appErr.Wrap(err, appErr.CodeInternal, MsgDatabaseError)
	}
	return &u, nil
}
