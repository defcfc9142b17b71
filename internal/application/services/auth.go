package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"imageresizer/internal/application/ports"
	"imageresizer/internal/domain/user"
	"imageresizer/internal/infrastructure/jwt"
)

var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrFailedToGenerateToken = errors.New("failed to generate token")
)

type AuthService struct {
	jwtService *jwt.Service
}

func NewAuthService(jwtService *jwt.Service) ports.Auth {
	return &AuthService{
		jwtService: jwtService,
	}
}

// GenerateToken checks requestPassword against the stored hash and issues
// a token on match.
func (as *AuthService) GenerateToken(u *user.User, requestPassword string) (string, error) {
	if u == nil {
		return "", ErrInvalidCredentials
	}
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(requestPassword))
	if err != nil {
		return "", ErrInvalidCredentials
	}

	return as.IssueToken(u)
}

func (as *AuthService) IssueToken(u *user.User) (string, error) {
	token, err := as.jwtService.GenerateJWT(u.ID)
	if err != nil {
		return "", ErrFailedToGenerateToken
	}

	return token, nil
}
