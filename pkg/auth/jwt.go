package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/priyadarshi/darzi/config"
)

// TokenTTL is the lifetime of every issued token.
const TokenTTL = 7 * 24 * time.Hour

// Claims holds the typed JWT payload.
type Claims struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	UserID     uint   `json:"user_id"`
	CustomerID string `json:"customer_id"` // empty when the user has no linked customer
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

// GenerateToken creates a signed JWT for the given identity, valid for
// TokenTTL from now. Returns the token string and its expiry instant.
func GenerateToken(userID uint, username, email, role, customerID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(TokenTTL)

	claims := Claims{
		Name:       username,
		Email:      email,
		Role:       role,
		UserID:     userID,
		CustomerID: customerID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    config.JWTIssuer(),
			Audience:  jwt.ClaimStrings{config.JWTAudience()},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret())
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// ValidateToken parses and validates a JWT string. Signature, issuer,
// audience, and expiry are all required; expiry is checked with zero
// clock-skew leeway, so a token one second past expiresAt is rejected.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{},
		func(tok *jwt.Token) (interface{}, error) { return secret(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(config.JWTIssuer()),
		jwt.WithAudience(config.JWTAudience()),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
