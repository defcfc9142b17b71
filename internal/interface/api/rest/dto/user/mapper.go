package user

import (
	"imageresizer/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		ID:    uDomain.ID,
		Email: uDomain.Email,
		Name:  uDomain.Name,
	}
}
