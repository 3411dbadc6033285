package auth

import (
	"fmt"
	"time"

	"github.com/GoArmGo/ShareBnB/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates the signed tokens behind the
// "logged in" policy. The username claim is the acting identity.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

type userClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the username.
func (s *TokenService) Issue(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, userClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sharebnb",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns the username it was issued for.
// Any parse or signature failure is domain.ErrUnauthorized.
func (s *TokenService) Validate(tokenString string) (string, error) {
	claims := &userClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid || claims.Username == "" {
		return "", fmt.Errorf("validate token: %w", domain.ErrUnauthorized)
	}

	return claims.Username, nil
}
