package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims is the in-process session handle. These tokens only identify
// the viewer to the API; no external identity provider is involved.
type SessionClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (sc *SessionClaims) IsAdmin() bool {
	return sc.Role == "admin"
}

func (sc *SessionClaims) IsSeller() bool {
	return sc.Role == "seller"
}

func (sc *SessionClaims) ViewerID() (uuid.UUID, error) {
	return uuid.Parse(sc.UserID)
}

const sessionTTL = 24 * time.Hour

func IssueSessionToken(secret []byte, userID uuid.UUID, email, username, role string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		UserID:   userID.String(),
		Email:    email,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func ValidateSessionToken(secret []byte, tokenStr string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	return claims, nil
}
