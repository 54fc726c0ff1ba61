package account

import "errors"

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrNameRequired = errors.New("name is required")
)
