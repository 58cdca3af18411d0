package user

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailTaken    = errors.New("user with this email already exists")
	ErrWeakPassword  = errors.New("password does not meet requirements")
	ErrInvalidAccess = errors.New("invalid credentials")
)
