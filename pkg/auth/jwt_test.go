package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	token, expiresAt, err := GenerateToken(7, "rahim", "rahim@example.com", "Admin", "3")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), expiresAt, 5*time.Second)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "rahim", claims.Name)
	assert.Equal(t, "rahim", claims.Subject)
	assert.Equal(t, "rahim@example.com", claims.Email)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "3", claims.CustomerID)
}

func TestValidateRejectsTampering(t *testing.T) {
	token, _, err := GenerateToken(1, "a", "a@example.com", "Customer", "")
	require.NoError(t, err)

	_, err = ValidateToken(token + "x")
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	claims := Claims{
		Name: "mallory",
		Role: "Admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("attacker-key"))
	require.NoError(t, err)

	_, err = ValidateToken(forged)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	claims := Claims{
		Name: "old",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "old",
			Issuer:    "darzi",
			Audience:  jwt.ClaimStrings{"darzi-web"},
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	require.NoError(t, err)

	_, err = ValidateToken(expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateRequiresExpiry(t *testing.T) {
	claims := Claims{
		Name: "forever",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "forever",
			Issuer:   "darzi",
			Audience: jwt.ClaimStrings{"darzi-web"},
		},
	}
	eternal, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	require.NoError(t, err)

	_, err = ValidateToken(eternal)
	assert.Error(t, err)
}
