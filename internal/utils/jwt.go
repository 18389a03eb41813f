package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/example/freshmarket/internal/models"
)

type jwtCustomClaims struct {
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenClaims is what a verified token says about its bearer.
type TokenClaims struct {
	UserID string
	Role   models.Role
}

// GenerateToken creates a signed JWT for the provided user.
func GenerateToken(secret string, user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &jwtCustomClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the token and returns the embedded user id and role.
func ParseToken(secret, tokenString string) (TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return TokenClaims{}, err
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return TokenClaims{}, jwt.ErrTokenInvalidClaims
	}
	if !claims.Role.Valid() {
		return TokenClaims{}, errors.New("token carries an unknown role")
	}

	return TokenClaims{UserID: claims.Subject, Role: claims.Role}, nil
}
