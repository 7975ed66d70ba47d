package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"evently/internal/auth"
	"evently/internal/cache"
	"evently/internal/email"
	apperrors "evently/internal/errors"
	"evently/internal/model"
	"evently/internal/repository"
)

// resendCooldown throttles repeat verification emails per address. Best
// effort only: with Redis down the throttle silently disappears.
const resendCooldown = 5 * time.Minute

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// The same error covers both cases to avoid user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering an already-registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrEmailNotVerified is returned on login before email verification.
	ErrEmailNotVerified = errors.New("please verify your email before logging in")
	// ErrInvalidVerificationToken is returned when no user matches the token.
	ErrInvalidVerificationToken = errors.New("invalid or already used verification token")
)

// AuthService handles registration, verification and login.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, emailAddr, password, role string) (*model.User, error)
	VerifyEmail(ctx context.Context, token string) error
	Login(ctx context.Context, emailAddr, password string) (token string, user *model.User, err error)
	ResendVerification(ctx context.Context, emailAddr string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	sender     email.Sender
	cooldowns  *cache.Client
	logger     zerolog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	users repository.UserRepository,
	jwtService *auth.JWTService,
	sender email.Sender,
	cooldowns *cache.Client,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		sender:     sender,
		cooldowns:  cooldowns,
		logger:     logger.With().Str("component", "auth").Logger(),
	}
}

// Register stores a pending user with a hashed password and verification
// token, then dispatches the verification email. The user row is committed
// even if dispatch fails; the caller can recover through ResendVerification.
func (s *authService) Register(ctx context.Context, firstName, lastName, emailAddr, password, role string) (*model.User, error) {
	existing, err := s.users.FindByEmail(ctx, emailAddr)
	if err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	token, err := auth.GenerateVerificationToken()
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FirstName:         firstName,
		LastName:          lastName,
		Email:             emailAddr,
		PasswordHash:      hashedPassword,
		Role:              role,
		EmailVerified:     false,
		VerificationToken: &token,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Concurrent registration can slip past the existence check; the
		// unique index on email is the real guard.
		if apperrors.IsDuplicateEntry(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.sender.SendVerification(ctx, user.Email, token); err != nil {
		s.logger.Error().Err(err).
			Str("email", user.Email).
			Msg("verification email dispatch failed, user can request a resend")
	}

	return user, nil
}

// VerifyEmail consumes a verification token. The token is cleared atomically
// with setting the verified flag, so a second call with the same token fails.
func (s *authService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.users.FindByVerificationToken(ctx, token)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrInvalidVerificationToken
		}
		return fmt.Errorf("find user by token: %w", err)
	}

	if err := s.users.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	return nil
}

// Login authenticates a verified user and returns a session token.
func (s *authService) Login(ctx context.Context, emailAddr, password string) (string, *model.User, error) {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if !auth.ComparePassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return "", nil, ErrEmailNotVerified
	}

	token, err := s.jwtService.GenerateSessionToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate session token: %w", err)
	}

	return token, user, nil
}

// ResendVerification re-sends the pending verification token for an
// unverified account. The response is identical whether or not the address
// is registered, and repeat sends are throttled per address.
func (s *authService) ResendVerification(ctx context.Context, emailAddr string) error {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return fmt.Errorf("find user: %w", err)
	}

	if user.EmailVerified || user.VerificationToken == nil {
		return nil
	}

	key := "verify_resend:" + user.Email
	if marker, _ := s.cooldowns.Get(ctx, key); marker != nil {
		s.logger.Debug().Str("email", user.Email).Msg("verification resend throttled")
		return nil
	}

	if err := s.sender.SendVerification(ctx, user.Email, *user.VerificationToken); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	_ = s.cooldowns.Set(ctx, key, []byte("1"), resendCooldown)
	return nil
}
