package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims carry the email of the signed-in dashboard user. The email
// is resolved to a Member on every request; roles live on the Member row,
// never in the token.
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func CreateSessionToken(secret []byte, email string, ttl time.Duration) (string, error) {
	claims := &SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func ValidateSessionToken(secret []byte, tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
