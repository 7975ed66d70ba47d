package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateSessionToken(42, "staff")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "staff", claims.Role)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(SessionExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ValidateToken_Failures(t *testing.T) {
	service := NewJWTService("test-secret")

	valid, err := service.GenerateSessionToken(1, "")
	assert.NoError(t, err)

	expired := mintExpiredToken(t, "test-secret")
	otherSecret, err := NewJWTService("other-secret").GenerateSessionToken(1, "")
	assert.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "malformed", token: "not-a-jwt"},
		{name: "tampered", token: valid + "x"},
		{name: "expired", token: expired},
		{name: "wrong secret", token: otherSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.ValidateToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

// mintExpiredToken signs a claim whose expiry is already in the past.
func mintExpiredToken(t *testing.T, secret string) string {
	t.Helper()
	claims := &Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)
	return token
}
