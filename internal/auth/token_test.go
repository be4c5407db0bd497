package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateValidateRoundtrip(t *testing.T) {
	m, err := NewManager("test-secret")
	require.NoError(t, err)

	token, err := m.Generate("a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestValidateWrongSecret(t *testing.T) {
	issuer, err := NewManager("secret-one")
	require.NoError(t, err)
	verifier, err := NewManager("secret-two")
	require.NoError(t, err)

	token, err := issuer.Generate("a@x.com")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpired(t *testing.T) {
	m, err := NewManager("test-secret")
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Email: "a@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenStr, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Validate(tokenStr)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateGarbage(t *testing.T) {
	m, err := NewManager("test-secret")
	require.NoError(t, err)

	_, err = m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewManagerEmptySecret(t *testing.T) {
	_, err := NewManager("")
	assert.Error(t, err)
}
