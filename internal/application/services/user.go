package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"

	"imageresizer/internal/application/ports"
	domain "imageresizer/internal/domain/user"
	"imageresizer/internal/infrastructure/metrics"
	"imageresizer/internal/infrastructure/mq"
)

type UserService struct {
	userRepository domain.Repository
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	hashCost       int
}

func NewUserService(
	userRepository domain.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
) ports.UserService {
	return &UserService{
		userRepository: userRepository,
		events:         events,
		mCounter:       mCounter,
		hashCost:       bcrypt.DefaultCost,
	}
}

func (us *UserService) FindUserByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return u, nil
}

func (us *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := us.userRepository.FetchUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	return u, nil
}

// Register stores a new user with a bcrypt hash of password. An email that
// is already taken yields domain.ErrEmailAlreadyExists.
func (us *UserService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = normalizeEmail(email)

	existing, err := us.userRepository.FetchUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), us.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u, err := us.userRepository.CreateUser(ctx, domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	us.events.Publish(mq.NewEvent(mq.ActionUserRegistered, u.ID, map[string]string{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}))
	us.mCounter.WithLabelValues(metrics.UsersRegistered).Inc()

	return u, nil
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
