package cli

import (
	"context"
	"strings"

	"papa-pizza/internal/account"
	"papa-pizza/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Router maps free-text input lines to registered commands, enforcing
// per-command authentication and argument arity before dispatch.
type Router struct {
	commands []*Command
	accounts account.Service

	// session returns the live session; it changes under the router's feet
	// as the user logs in and out.
	session func() account.Session
	// authFlow is the inline register-or-login prompt offered when an
	// anonymous session hits a gated command.
	authFlow func(ctx context.Context) error
}

func NewRouter(accounts account.Service, session func() account.Session, authFlow func(ctx context.Context) error) *Router {
	return &Router{
		accounts: accounts,
		session:  session,
		authFlow: authFlow,
	}
}

func (r *Router) Register(cmds ...*Command) {
	r.commands = append(r.commands, cmds...)
}

// Visible returns the commands the session may see. Admin-only commands are
// hidden from everyone else.
func (r *Router) Visible(ctx context.Context) []*Command {
	isAdmin := r.accounts.IsAdmin(ctx, r.session())

	out := make([]*Command, 0, len(r.commands))
	for _, c := range r.commands {
		if c.Privilege != nil && *c.Privilege == account.PrivilegeAdmin && !isAdmin {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Dispatch tokenizes a line, resolves the longest-prefix command match,
// gates it, checks arity and runs the handler.
func (r *Router) Dispatch(ctx context.Context, line string) error {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil
	}

	cmd := r.match(tokens)
	if cmd == nil {
		return ErrUnknownCommand
	}

	ctx = logger.WithCommandID(ctx, uuid.NewString())
	log := logger.FromCtx(ctx).With(zap.String("command", cmd.Name))

	if cmd.Privilege != nil {
		if err := r.gate(ctx, cmd); err != nil {
			log.Warn("command gated", zap.Error(err))
			return err
		}
	}

	args := tokens[len(cmd.tokens()):]
	min, max := cmd.arity()
	if len(args) < min || len(args) > max {
		return &ArgCountError{Command: cmd.Name, Min: min, Max: max, Got: len(args)}
	}

	if err := cmd.Handler(ctx, args); err != nil {
		log.Warn("command failed", zap.Error(err))
		return err
	}
	return nil
}

// match finds the registered command whose name is the longest token prefix
// of the input.
func (r *Router) match(tokens []string) *Command {
	var best *Command
	bestLen := 0
	for _, c := range r.commands {
		parts := c.tokens()
		if len(parts) > len(tokens) || len(parts) <= bestLen {
			continue
		}
		matched := true
		for i, p := range parts {
			if !strings.EqualFold(tokens[i], p) {
				matched = false
				break
			}
		}
		if matched {
			best = c
			bestLen = len(parts)
		}
	}
	return best
}

func (r *Router) gate(ctx context.Context, cmd *Command) error {
	if r.session().IsAnonymous() {
		if r.authFlow != nil {
			_ = r.authFlow(ctx)
		}
		// one retry after the inline flow, then give up
		if r.session().IsAnonymous() {
			return ErrAuthRequired
		}
	}

	_, err := r.accounts.Require(ctx, r.session(), *cmd.Privilege)
	return err
}
