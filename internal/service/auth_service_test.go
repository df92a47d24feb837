package service

import (
	"testing"
	"time"

	"wikiquiz_backend/internal/config"
	"wikiquiz_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:     "test-secret-test-secret-test-secret",
			ExpireTime: time.Hour,
		},
		Auth: config.AuthConfig{Password: "open-sesame"},
	}
}

func TestLoginWithPlainPassword(t *testing.T) {
	svc := NewAuthService(authTestConfig())

	token, err := svc.Login("open-sesame")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, "test-secret-test-secret-test-secret")
	require.NoError(t, err)
	assert.True(t, claims.Authenticated)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(authTestConfig())

	_, err := svc.Login("wrong")
	assert.ErrorIs(t, err, util.ErrInvalidPassword)
}

func TestLoginWithBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := authTestConfig()
	cfg.Auth.PasswordHash = string(hash)
	cfg.Auth.Password = ""
	svc := NewAuthService(cfg)

	_, err = svc.Login("open-sesame")
	assert.NoError(t, err)

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, util.ErrInvalidPassword)
}
