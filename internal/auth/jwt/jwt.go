package jwt

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
)

type Config struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

func NewAuth(c *Config) (*jwtauth.JWTAuth, error) {
	if c.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not set")
	}
	return jwtauth.New("HS256", []byte(c.Secret), nil), nil
}

// NewUserToken issues a token carrying the user id as its subject.
func NewUserToken(jwtAuth *jwtauth.JWTAuth, userID int, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"sub": fmt.Sprint(userID),
		"exp": time.Now().Add(ttl).Unix(),
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return ts, nil
}

// VerifyToken checks the token signature and expiry and returns the user id
// from the subject claim.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (string, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return "", err
	}
	return t.Subject(), nil
}

// UserIDFromContext extracts the authenticated user id placed in the request
// context by the verifier middleware.
func UserIDFromContext(ctx context.Context) (int, error) {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, err
	}
	if token == nil {
		return 0, fmt.Errorf("no token in context")
	}
	id, err := strconv.Atoi(token.Subject())
	if err != nil {
		return 0, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return id, nil
}
