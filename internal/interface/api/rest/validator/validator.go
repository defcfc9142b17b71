package validator

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"imageresizer/internal/domain/image"
	"imageresizer/internal/interface/api/rest/dto/auth"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72 // bcrypt safe
	maxNameLen     = 64
	maxDimension   = 10_000 // px per side
)

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(r.Email, errs)

	// password (required + length); bcrypt truncates after 72 bytes
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if l := utf8.RuneCountInString(r.Password); l < minPasswordLen || len(r.Password) > maxPasswordLen {
		errs["password"] = "password length must be 6–72 characters"
	}

	// name (required + length)
	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs["name"] = "name is required"
	} else if utf8.RuneCountInString(name) > maxNameLen {
		errs["name"] = "name length must be 1–64 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(r.Email, errs)

	// not trimmed, only checked for presence
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(raw string, errs map[string]string) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		errs["email"] = "email is required"
		return
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		errs["email"] = "invalid email format"
	}
}

// ParseResizeOptions reads the optional multipart fields of a resize
// request. Empty fields mean "not set". Width and height must be positive
// integers; a quality that is not an integer falls back to the default.
func ParseResizeOptions(width, height, quality string) (image.ResizeOptions, error) {
	var (
		opts image.ResizeOptions
		err  error
	)

	if opts.Width, err = parseDimension(width); err != nil {
		return image.ResizeOptions{}, err
	}
	if opts.Height, err = parseDimension(height); err != nil {
		return image.ResizeOptions{}, err
	}

	if q, err := strconv.Atoi(strings.TrimSpace(quality)); err == nil {
		opts.Quality = q
	}

	return opts, nil
}

func parseDimension(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 || v > maxDimension {
		return 0, image.ErrInvalidDimension
	}
	return v, nil
}
