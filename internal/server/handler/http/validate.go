package http

import (
	"errors"
	"regexp"
)

// Field limits enforced at the HTTP edge, before anything reaches a service.
const (
	maxUsernameLen    = 32
	maxDescriptionLen = 1000
	minPasswordLen    = 8
	maxPasswordLen    = 32
	maxAge            = 100
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateRegister(req *RegisterRequest) error {
	if req.Username == "" || len(req.Username) > maxUsernameLen {
		return errors.New("username must be 1-32 characters")
	}
	if !emailRe.MatchString(req.Email) {
		return errors.New("invalid email format")
	}
	if req.Age < 0 || req.Age > maxAge {
		return errors.New("age must be between 0 and 100")
	}
	if len(req.Description) > maxDescriptionLen {
		return errors.New("description must be at most 1000 characters")
	}
	if len(req.Password) < minPasswordLen || len(req.Password) > maxPasswordLen {
		return errors.New("password must be 8-32 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if description == "" {
		return errors.New("description must not be empty")
	}
	if len(description) > maxDescriptionLen {
		return errors.New("description must be at most 1000 characters")
	}
	return nil
}
