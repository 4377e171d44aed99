package account

import "errors"

var (
	// -- Authentication/Authorization --
	ErrNotAuthenticated      = errors.New("not authenticated")
	ErrInsufficientPrivilege = errors.New("insufficient privileges")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrTooManyAttempts       = errors.New("too many login attempts, slow down")

	// -- Validation & Input --
	ErrInvalidUsername  = errors.New("username must be 3-20 alphanumeric characters")
	ErrPasswordTooShort = errors.New("password too short (min 4)")

	// -- Resource State --
	ErrUsernameTaken   = errors.New("username already taken")
	ErrAccountNotFound = errors.New("account not found")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
