package jwt

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserToken(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, err := NewUserToken(jwtAuth, 42, time.Hour)
	require.NoError(t, err)

	sub, err := VerifyToken(jwtAuth, tok)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
}

func TestExpiredToken(t *testing.T) {
	jwtAuth := jwtauth.New("HS256", []byte("secret"), nil)

	tok, err := NewUserToken(jwtAuth, 42, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(jwtAuth, tok)
	assert.Error(t, err)
}

func TestWrongKey(t *testing.T) {
	issuer := jwtauth.New("HS256", []byte("secret"), nil)
	verifier := jwtauth.New("HS256", []byte("other"), nil)

	tok, err := NewUserToken(issuer, 42, time.Hour)
	require.NoError(t, err)

	_, err = VerifyToken(verifier, tok)
	assert.Error(t, err)
}
