package services

import (
	"fmt"

	"github.com/embedworks/embedvideo-go/internal/infrastructure/observability/logging"
	"github.com/embedworks/embedvideo-go/internal/infrastructure/security"
	"github.com/embedworks/embedvideo-go/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// AuthResult holds authentication result data.
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuthService handles admin authentication and JWT issuance.
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service.
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// Login verifies the admin password and issues a signed token.
func (s *AuthService) Login(password string) (*AuthResult, error) {
	if config.AdminPasswordHash == "" {
		return nil, fmt.Errorf("admin authentication is not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(password)); err != nil {
		s.logger.Auth().Warn("Admin login rejected")
		return &AuthResult{Success: false, Error: "invalid credentials"}, nil
	}

	token, err := security.GenerateAdminToken(config.JWTSecret, config.TokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Auth().Info("Admin login succeeded")
	return &AuthResult{Token: token, Role: "admin", Success: true}, nil
}
