package menu

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidPrice = errors.New("price must be positive")
	ErrInvalidName  = errors.New("item name must not be empty")

	// -- Resource State --
	ErrItemNotFound   = errors.New("menu item not found")
	ErrItemNameExists = errors.New("menu item name already exists")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
	PgCheckViolation  = "23514"
)
