package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"evently/internal/auth"
	"evently/internal/cache"
	"evently/internal/model"
)

func newAuthServiceForTest(users *MockUserRepository, sender *MockSender) (AuthService, *auth.JWTService) {
	jwtService := auth.NewJWTService("test-secret")
	var cooldowns *cache.Client // nil client fails safe, no throttling in tests
	return NewAuthService(users, jwtService, sender, cooldowns, zerolog.Nop()), jwtService
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMocks    func(*MockUserRepository, *MockSender)
		expectedError error
	}{
		{
			name:  "successful registration",
			email: "new@example.com",
			setupMocks: func(users *MockUserRepository, sender *MockSender) {
				users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				sender.On("SendVerification", mock.Anything, "new@example.com", mock.AnythingOfType("string")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "email already registered",
			email: "existing@example.com",
			setupMocks: func(users *MockUserRepository, sender *MockSender) {
				users.On("FindByEmail", mock.Anything, "existing@example.com").Return(&model.User{Email: "existing@example.com"}, nil)
			},
			expectedError: ErrEmailTaken,
		},
		{
			name:  "user committed even when email dispatch fails",
			email: "flaky@example.com",
			setupMocks: func(users *MockUserRepository, sender *MockSender) {
				users.On("FindByEmail", mock.Anything, "flaky@example.com").Return(nil, gorm.ErrRecordNotFound)
				users.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
				sender.On("SendVerification", mock.Anything, "flaky@example.com", mock.AnythingOfType("string")).Return(errors.New("smtp down"))
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			sender := new(MockSender)
			tt.setupMocks(users, sender)

			service, _ := newAuthServiceForTest(users, sender)
			user, err := service.Register(context.Background(), "Jane", "Doe", tt.email, "password123", "")

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.False(t, user.EmailVerified)
				assert.NotNil(t, user.VerificationToken)
				assert.Len(t, *user.VerificationToken, 64)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, "password123", user.PasswordHash)
			}

			users.AssertExpectations(t)
			sender.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyEmail(t *testing.T) {
	token := "aaaabbbbccccddddeeeeffff0000111122223333aaaabbbbccccdddd44445555"

	t.Run("consumes a pending token", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("FindByVerificationToken", mock.Anything, token).Return(&model.User{ID: 3, VerificationToken: &token}, nil)
		users.On("MarkVerified", mock.Anything, uint(3)).Return(nil)

		service, _ := newAuthServiceForTest(users, new(MockSender))
		assert.NoError(t, service.VerifyEmail(context.Background(), token))
		users.AssertExpectations(t)
	})

	t.Run("second use of the same token fails", func(t *testing.T) {
		// MarkVerified cleared the token, so the lookup now misses.
		users := new(MockUserRepository)
		users.On("FindByVerificationToken", mock.Anything, token).Return(nil, gorm.ErrRecordNotFound)

		service, _ := newAuthServiceForTest(users, new(MockSender))
		err := service.VerifyEmail(context.Background(), token)
		assert.Equal(t, ErrInvalidVerificationToken, err)
		users.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	passwordHash, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	verified := &model.User{ID: 9, Email: "v@example.com", PasswordHash: passwordHash, EmailVerified: true, Role: "staff"}
	unverified := &model.User{ID: 10, Email: "u@example.com", PasswordHash: passwordHash, EmailVerified: false}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "v@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "v@example.com").Return(verified, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "v@example.com",
			password: "wrong",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "v@example.com").Return(verified, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "login before verification",
			email:    "u@example.com",
			password: "password123",
			setupMock: func(users *MockUserRepository) {
				users.On("FindByEmail", mock.Anything, "u@example.com").Return(unverified, nil)
			},
			expectedError: ErrEmailNotVerified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tt.setupMock(users)

			service, jwtService := newAuthServiceForTest(users, new(MockSender))
			token, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)

				// The minted token resolves back to the same user identity.
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID, claims.UserID)
				assert.Equal(t, user.Role, claims.Role)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login_IdenticalErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	passwordHash, err := auth.HashPassword("password123")
	assert.NoError(t, err)

	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
	users.On("FindByEmail", mock.Anything, "real@example.com").Return(&model.User{
		ID: 1, Email: "real@example.com", PasswordHash: passwordHash, EmailVerified: true,
	}, nil)

	service, _ := newAuthServiceForTest(users, new(MockSender))

	_, _, unknownErr := service.Login(context.Background(), "ghost@example.com", "password123")
	_, _, wrongErr := service.Login(context.Background(), "real@example.com", "nope")

	// No user enumeration through error text.
	assert.Equal(t, unknownErr, wrongErr)
}

func TestAuthService_ResendVerification(t *testing.T) {
	token := "deadbeef"

	tests := []struct {
		name       string
		email      string
		setupMocks func(*MockUserRepository, *MockSender)
	}{
		{
			name:  "unknown email is silently accepted",
			email: "ghost@example.com",
			setupMocks: func(users *MockUserRepository, sender *MockSender) {
				users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
		},
		{
			name:  "verified account gets no email",
			email: "done@example.com",
			setupMocks: func(users *MockUserRepository, sender *MockSender) {
				users.On("FindByEmail", mock.Anything, "done@example.com").Return(&model.User{Email: "done@example.com", EmailVerified: true}, nil)
			},
		},
		{
			name:  "unverified account gets the stored token again",
			email: "pending@example.com",
			setupMocks: func(users *MockUserRepository, sender *MockSender) {
				users.On("FindByEmail", mock.Anything, "pending@example.com").Return(&model.User{
					Email:             "pending@example.com",
					VerificationToken: &token,
				}, nil)
				sender.On("SendVerification", mock.Anything, "pending@example.com", token).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			sender := new(MockSender)
			tt.setupMocks(users, sender)

			service, _ := newAuthServiceForTest(users, sender)
			assert.NoError(t, service.ResendVerification(context.Background(), tt.email))

			users.AssertExpectations(t)
			sender.AssertExpectations(t)
		})
	}
}
