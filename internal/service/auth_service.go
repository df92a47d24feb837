package service

import (
	"crypto/subtle"

	"wikiquiz_backend/internal/config"
	"wikiquiz_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService 单一共享口令的登录校验与令牌签发
// 这是个短生命周期的个人学习工具, 不做用户体系
type AuthService struct {
	cfg *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login 校验口令, 通过后签发JWT
func (s *AuthService) Login(password string) (string, error) {
	if !s.verifyPassword(password) {
		return "", util.ErrInvalidPassword
	}

	return util.GenerateJWT(s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
}

func (s *AuthService) verifyPassword(password string) bool {
	if s.cfg.Auth.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.Auth.PasswordHash), []byte(password)) == nil
	}

	// 明文回退仅用于本地开发
	return subtle.ConstantTimeCompare([]byte(s.cfg.Auth.Password), []byte(password)) == 1
}
