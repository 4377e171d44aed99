package cli

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command. type 'help'")
	ErrAuthRequired   = errors.New("authentication required")
)
