package user

import (
	"time"
)

type (
	ID   = string
	User struct {
		ID           ID
		Email        string
		Name         string
		PasswordHash string

		CreatedAt time.Time
	}
	Users []*User
)
