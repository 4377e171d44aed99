package order

import "errors"

var (
	// -- Authentication/Authorization --
	ErrNotOwner = errors.New("cannot modify another user's order")

	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrBatchTooLarge   = errors.New("quantity exceeds per-call batch cap")
	ErrUnknownMenuItem = errors.New("invalid menu item")

	// -- Resource State --
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderPaid      = errors.New("order already paid")
	ErrNoCurrentOrder = errors.New("no current order selected")
)
