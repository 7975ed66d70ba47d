package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

// UserService exposes read operations over the user directory. Every record
// leaving this service is sanitized.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]model.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}
	return sanitized, nil
}
