// Package auth verifies admin session tokens and decides what a session may
// do. Credential issuance lives in the external auth system; this layer only
// checks signatures and applies the role policy.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the access level carried in a session token.
type Role string

const (
	// RoleAdmin has full access to every admin surface.
	RoleAdmin Role = "admin"
	// RoleEditor may only manage posts linked to their own author profile.
	RoleEditor Role = "editor"
)

// Session identifies an authenticated admin caller.
type Session struct {
	UserID string
	Email  string
	Role   Role
}

// ErrInvalidToken covers every token failure: bad signature, expiry, wrong
// algorithm, missing claims. Callers respond 401 without detail.
var ErrInvalidToken = errors.New("auth: invalid session token")

// ParseToken verifies an HS256 session token and extracts the session.
// Unknown roles degrade to editor, the more restricted level.
func ParseToken(secret, tokenString string) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	role := RoleEditor
	if r, _ := claims["role"].(string); Role(r) == RoleAdmin {
		role = RoleAdmin
	}

	return &Session{UserID: uid, Email: email, Role: role}, nil
}

// NewToken signs a session token. Production tokens come from the external
// auth system; this is used by tests and local tooling.
func NewToken(secret string, s Session, duration time.Duration) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = s.UserID
	claims["email"] = s.Email
	claims["role"] = string(s.Role)
	claims["exp"] = time.Now().Add(duration).Unix()

	return token.SignedString([]byte(secret))
}
