package cli

import (
	"context"
	"fmt"
	"strings"

	"papa-pizza/internal/account"
)

// Arg is one declared parameter of a command. Declared specs replace any
// kind of handler introspection: what you register is what gets checked.
type Arg struct {
	Name     string
	Required bool
}

// Handler runs a command with the already-validated argument tokens.
type Handler func(ctx context.Context, args []string) error

// Command binds a (possibly multi-token) name to a handler.
// A nil Privilege means the command is public.
type Command struct {
	Name        string
	Description string
	Privilege   *account.Privilege
	Args        []Arg
	Handler     Handler
}

func (c *Command) tokens() []string {
	return strings.Fields(c.Name)
}

// arity returns the accepted argument count range.
func (c *Command) arity() (min, max int) {
	for _, a := range c.Args {
		if a.Required {
			min++
		}
	}
	return min, len(c.Args)
}

// Usage renders the declared args as "<required> [optional]".
func (c *Command) Usage() string {
	parts := make([]string, 0, len(c.Args))
	for _, a := range c.Args {
		if a.Required {
			parts = append(parts, "<"+a.Name+">")
		} else {
			parts = append(parts, "["+a.Name+"]")
		}
	}
	return strings.Join(parts, " ")
}

func privilegeOf(p account.Privilege) *account.Privilege {
	return &p
}

// Shorthands used at registration time.
var (
	public    *account.Privilege
	userLevel = privilegeOf(account.PrivilegeUser)
	adminOnly = privilegeOf(account.PrivilegeAdmin)
)

// ArgCountError reports an argument count outside the declared range.
type ArgCountError struct {
	Command string
	Min     int
	Max     int
	Got     int
}

func (e *ArgCountError) Error() string {
	return fmt.Sprintf("invalid args for %q (expected %d-%d, got %d)", e.Command, e.Min, e.Max, e.Got)
}
