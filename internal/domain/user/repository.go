package user

import (
	"context"
	"errors"
)

var ErrEmailAlreadyExists = errors.New("user already exists")

// Repository is the credential store. Fetch methods return (nil, nil)
// when nothing matches.
type Repository interface {
	FetchUserByID(ctx context.Context, id ID) (*User, error)
	FetchUserByEmail(ctx context.Context, email string) (*User, error)
	CreateUser(ctx context.Context, req User) (*User, error)
}
