package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionManager signs and verifies the stateless session tokens handed
// to browsers after a successful GitHub login.
//
// Tokens carry only the user id and deliberately no expiry claim: a token
// stays valid until the signing secret rotates or the user row is gone.
// This mirrors the original deployment and is a known weakness; rotating
// JWT_SECRET is the only global revocation lever.
type SessionManager struct {
	Secret []byte
}

var defaultManager *SessionManager

func NewSessionManager(secret string) *SessionManager {
	m := &SessionManager{Secret: []byte(secret)}
	defaultManager = m
	return m
}

// DefaultSession returns the last constructed SessionManager (used for
// auto-wiring routes)
func DefaultSession() *SessionManager { return defaultManager }

type SessionClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// Issue signs a token for userID. Deterministic for a given secret apart
// from the issued-at claim.
func (m *SessionManager) Issue(userID string) (string, error) {
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.Secret)
}

// Decode verifies token and returns the user id it carries. Any signature
// or parse failure comes back as an error; expiry is never inspected
// because the claims carry none.
func (m *SessionManager) Decode(tokenStr string) (string, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.Secret, nil
	})
	if err != nil {
		return "", err
	}
	if !tkn.Valid || claims.UserID == "" {
		return "", errors.New("invalid token")
	}
	return claims.UserID, nil
}
