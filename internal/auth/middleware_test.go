package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"evently/internal/model"
)

// MockUserResolver is a mock implementation of UserResolver.
type MockUserResolver struct {
	mock.Mock
}

func (m *MockUserResolver) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func invokeMiddleware(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (int, *model.User, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var caller *model.User
	handlerRan := false
	handler := mw(func(c echo.Context) error {
		handlerRan = true
		caller = Caller(c)
		return c.NoContent(http.StatusOK)
	})

	err := handler(c)
	if err != nil {
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		return httpErr.Code, caller, handlerRan
	}
	return rec.Code, caller, handlerRan
}

func TestMiddleware_Required(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	validToken, err := jwtService.GenerateSessionToken(7, "")
	assert.NoError(t, err)

	user := &model.User{ID: 7, Email: "u@example.com", EmailVerified: true}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockUserResolver)
		expectedStatus int
		expectHandler  bool
	}{
		{
			name:           "no token",
			authHeader:     "",
			setupMock:      func(m *MockUserResolver) {},
			expectedStatus: http.StatusUnauthorized,
			expectHandler:  false,
		},
		{
			name:           "malformed header",
			authHeader:     "Token abc",
			setupMock:      func(m *MockUserResolver) {},
			expectedStatus: http.StatusUnauthorized,
			expectHandler:  false,
		},
		{
			name:           "invalid token",
			authHeader:     "Bearer garbage",
			setupMock:      func(m *MockUserResolver) {},
			expectedStatus: http.StatusForbidden,
			expectHandler:  false,
		},
		{
			name:           "expired token",
			authHeader:     "Bearer " + mintExpiredToken(t, "test-secret"),
			setupMock:      func(m *MockUserResolver) {},
			expectedStatus: http.StatusForbidden,
			expectHandler:  false,
		},
		{
			name:       "user deleted since token was minted",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserResolver) {
				m.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectHandler:  false,
		},
		{
			name:       "valid token",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserResolver) {
				m.On("FindByID", mock.Anything, uint(7)).Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			expectHandler:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockUserResolver)
			tt.setupMock(resolver)

			mw := NewMiddleware(jwtService, resolver)
			status, caller, handlerRan := invokeMiddleware(t, mw.Required, tt.authHeader)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectHandler, handlerRan)
			if tt.expectHandler {
				assert.Equal(t, user, caller)
			}
			// Failures short of token validity must never touch the store.
			resolver.AssertExpectations(t)
		})
	}
}

func TestMiddleware_Optional(t *testing.T) {
	jwtService := NewJWTService("test-secret")
	validToken, err := jwtService.GenerateSessionToken(7, "")
	assert.NoError(t, err)

	user := &model.User{ID: 7, Email: "u@example.com"}

	tests := []struct {
		name         string
		authHeader   string
		setupMock    func(*MockUserResolver)
		expectCaller bool
	}{
		{
			name:         "no token proceeds anonymously",
			authHeader:   "",
			setupMock:    func(m *MockUserResolver) {},
			expectCaller: false,
		},
		{
			name:         "invalid token proceeds anonymously",
			authHeader:   "Bearer garbage",
			setupMock:    func(m *MockUserResolver) {},
			expectCaller: false,
		},
		{
			name:       "user deleted proceeds anonymously",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserResolver) {
				m.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectCaller: false,
		},
		{
			name:       "valid token attaches caller",
			authHeader: "Bearer " + validToken,
			setupMock: func(m *MockUserResolver) {
				m.On("FindByID", mock.Anything, uint(7)).Return(user, nil)
			},
			expectCaller: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockUserResolver)
			tt.setupMock(resolver)

			mw := NewMiddleware(jwtService, resolver)
			status, caller, handlerRan := invokeMiddleware(t, mw.Optional, tt.authHeader)

			assert.Equal(t, http.StatusOK, status)
			assert.True(t, handlerRan)
			if tt.expectCaller {
				assert.Equal(t, user, caller)
			} else {
				assert.Nil(t, caller)
			}
			resolver.AssertExpectations(t)
		})
	}
}
