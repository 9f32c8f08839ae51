package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestParseTokenRoundTrip(t *testing.T) {
	token, err := NewToken(testSecret, Session{
		UserID: "u1",
		Email:  "jo@example.com",
		Role:   RoleAdmin,
	}, time.Hour)
	require.NoError(t, err)

	sess, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "u1", sess.UserID)
	assert.Equal(t, "jo@example.com", sess.Email)
	assert.Equal(t, RoleAdmin, sess.Role)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := NewToken(testSecret, Session{UserID: "u1", Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenExpired(t *testing.T) {
	token, err := NewToken(testSecret, Session{UserID: "u1", Role: RoleAdmin}, -time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken(testSecret, "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenUnknownRoleDegradesToEditor(t *testing.T) {
	token, err := NewToken(testSecret, Session{UserID: "u1", Role: Role("superuser")}, time.Hour)
	require.NoError(t, err)

	sess, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, RoleEditor, sess.Role)
}

func TestParseTokenMissingUserID(t *testing.T) {
	token, err := NewToken(testSecret, Session{Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsUnsignedAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"uid":  "u1",
		"role": "admin",
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testSecret, raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
