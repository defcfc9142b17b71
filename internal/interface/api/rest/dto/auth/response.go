package auth

import "imageresizer/internal/interface/api/rest/dto/user"

type (
	Response struct {
		Success bool      `json:"success"`
		Message string    `json:"message"`
		Token   string    `json:"token"`
		User    user.User `json:"user"`
	}
	ProfileResponse struct {
		Success bool      `json:"success"`
		User    user.User `json:"user"`
	}
)
