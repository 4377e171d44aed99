package cli

import (
	"context"
	"testing"

	"papa-pizza/internal/account"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAccounts satisfies account.Service with canned answers so router
// behavior can be tested without a store.
type stubAccounts struct {
	current account.Account
	isAdmin bool
	err     error
}

func (s *stubAccounts) Register(ctx context.Context, acting account.Session, username, password string, grantAdmin bool) (account.Account, error) {
	return s.current, s.err
}

func (s *stubAccounts) Login(ctx context.Context, username, password string) (account.Session, account.Account, error) {
	return account.Session{Token: "t"}, s.current, s.err
}

func (s *stubAccounts) Current(ctx context.Context, sess account.Session) (account.Account, error) {
	if sess.IsAnonymous() {
		return account.Account{}, account.ErrNotAuthenticated
	}
	return s.current, s.err
}

func (s *stubAccounts) Require(ctx context.Context, sess account.Session, level account.Privilege) (account.Account, error) {
	if sess.IsAnonymous() {
		return account.Account{}, account.ErrNotAuthenticated
	}
	if s.err != nil {
		return account.Account{}, s.err
	}
	if s.current.Privilege < level {
		return account.Account{}, account.ErrInsufficientPrivilege
	}
	return s.current, nil
}

func (s *stubAccounts) IsAdmin(ctx context.Context, sess account.Session) bool {
	return !sess.IsAnonymous() && s.isAdmin
}

func (s *stubAccounts) List(ctx context.Context) ([]account.Account, error) { return nil, s.err }
func (s *stubAccounts) Promote(ctx context.Context, id int) error          { return s.err }
func (s *stubAccounts) Demote(ctx context.Context, id int) error           { return s.err }

func newTestRouter(accounts account.Service, sess account.Session, authFlow func(ctx context.Context) error) (*Router, *account.Session) {
	live := sess
	r := NewRouter(accounts, func() account.Session { return live }, authFlow)
	return r, &live
}

func TestDispatchUnknownCommand(t *testing.T) {
	r, _ := newTestRouter(&stubAccounts{}, account.Anonymous(), nil)

	err := r.Dispatch(context.Background(), "make me a sandwich")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestDispatchBlankLine(t *testing.T) {
	r, _ := newTestRouter(&stubAccounts{}, account.Anonymous(), nil)

	assert.NoError(t, r.Dispatch(context.Background(), "   "))
}

func TestDispatchLongestPrefixWins(t *testing.T) {
	r, _ := newTestRouter(&stubAccounts{}, account.Anonymous(), nil)

	var hit string
	r.Register(
		&Command{Name: "order", Handler: func(ctx context.Context, args []string) error {
			hit = "order"
			return nil
		}},
		&Command{Name: "order item add", Args: []Arg{{Name: "name"}, {Name: "qty"}},
			Handler: func(ctx context.Context, args []string) error {
				hit = "order item add"
				return nil
			}},
	)

	require.NoError(t, r.Dispatch(context.Background(), "ORDER Item ADD pepperoni 2"))
	assert.Equal(t, "order item add", hit)
}

func TestDispatchArgCount(t *testing.T) {
	r, _ := newTestRouter(&stubAccounts{}, account.Anonymous(), nil)
	r.Register(&Command{
		Name: "order switch",
		Args: []Arg{{Name: "id", Required: true}},
		Handler: func(ctx context.Context, args []string) error {
			return nil
		},
	})

	err := r.Dispatch(context.Background(), "order switch")
	var argErr *ArgCountError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, 1, argErr.Min)
	assert.Equal(t, 0, argErr.Got)

	err = r.Dispatch(context.Background(), "order switch 1 2")
	assert.ErrorAs(t, err, &argErr)
}

func TestDispatchArgsPassedToHandler(t *testing.T) {
	r, _ := newTestRouter(&stubAccounts{}, account.Anonymous(), nil)

	var got []string
	r.Register(&Command{
		Name: "admin accounts promote",
		Args: []Arg{{Name: "id", Required: true}},
		Handler: func(ctx context.Context, args []string) error {
			got = args
			return nil
		},
	})

	require.NoError(t, r.Dispatch(context.Background(), "admin accounts promote 7"))
	assert.Equal(t, []string{"7"}, got)
}

func TestGateAnonymousDenied(t *testing.T) {
	r, _ := newTestRouter(&stubAccounts{}, account.Anonymous(), nil)

	ran := false
	r.Register(&Command{
		Name:      "menu",
		Privilege: userLevel,
		Handler: func(ctx context.Context, args []string) error {
			ran = true
			return nil
		},
	})

	err := r.Dispatch(context.Background(), "menu")
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.False(t, ran)
}

func TestGateAuthFlowRetry(t *testing.T) {
	// the inline auth flow logs the session in, then dispatch retries the gate
	stub := &stubAccounts{current: account.Account{ID: 1, Username: "papa"}}
	var r *Router
	var live *account.Session
	r, live = newTestRouter(stub, account.Anonymous(), func(ctx context.Context) error {
		*live = account.Session{Token: "t"}
		return nil
	})

	ran := false
	r.Register(&Command{
		Name:      "menu",
		Privilege: userLevel,
		Handler: func(ctx context.Context, args []string) error {
			ran = true
			return nil
		},
	})

	require.NoError(t, r.Dispatch(context.Background(), "menu"))
	assert.True(t, ran)
}

func TestGateInsufficientPrivilege(t *testing.T) {
	stub := &stubAccounts{current: account.Account{ID: 1, Privilege: account.PrivilegeUser}}
	r, _ := newTestRouter(stub, account.Session{Token: "t"}, nil)

	r.Register(&Command{
		Name:      "admin db reset",
		Privilege: adminOnly,
		Handler: func(ctx context.Context, args []string) error {
			return nil
		},
	})

	err := r.Dispatch(context.Background(), "admin db reset")
	assert.ErrorIs(t, err, account.ErrInsufficientPrivilege)
}

func TestVisibleHidesAdminCommands(t *testing.T) {
	stub := &stubAccounts{current: account.Account{ID: 1}}
	r, _ := newTestRouter(stub, account.Session{Token: "t"}, nil)

	noop := func(ctx context.Context, args []string) error { return nil }
	r.Register(
		&Command{Name: "help", Privilege: public, Handler: noop},
		&Command{Name: "menu", Privilege: userLevel, Handler: noop},
		&Command{Name: "admin db reset", Privilege: adminOnly, Handler: noop},
	)

	names := func() []string {
		var out []string
		for _, c := range r.Visible(context.Background()) {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"help", "menu"}, names())

	stub.isAdmin = true
	assert.Equal(t, []string{"help", "menu", "admin db reset"}, names())
}

func TestUsageRendering(t *testing.T) {
	c := &Command{Name: "order create", Args: []Arg{{Name: "type", Required: true}, {Name: "loyalty"}}}
	assert.Equal(t, "<type> [loyalty]", c.Usage())

	min, max := c.arity()
	assert.Equal(t, 1, min)
	assert.Equal(t, 2, max)
}
