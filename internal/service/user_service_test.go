package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "evently/internal/errors"
	"evently/internal/model"
)

func TestUserService_GetUser(t *testing.T) {
	t.Run("returns a sanitized record", func(t *testing.T) {
		token := "pending"
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(2)).Return(&model.User{
			ID: 2, Email: "vic@example.com", PasswordHash: "hash", VerificationToken: &token,
		}, nil)

		service := NewUserService(users)
		user, err := service.GetUser(context.Background(), 2)

		assert.NoError(t, err)
		assert.Empty(t, user.PasswordHash)
		assert.Nil(t, user.VerificationToken)
		assert.Equal(t, "vic@example.com", user.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(users)
		user, err := service.GetUser(context.Background(), 99)

		assert.Nil(t, user)
		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	users := new(MockUserRepository)
	users.On("List", mock.Anything).Return([]model.User{
		{ID: 1, Email: "a@example.com", PasswordHash: "hash-a"},
		{ID: 2, Email: "b@example.com", PasswordHash: "hash-b"},
	}, nil)

	service := NewUserService(users)
	list, err := service.ListUsers(context.Background())

	assert.NoError(t, err)
	assert.Len(t, list, 2)
	for _, user := range list {
		assert.Empty(t, user.PasswordHash)
	}
}
