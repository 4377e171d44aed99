package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"papa-pizza/internal/account"
	"papa-pizza/internal/menu"
	"papa-pizza/internal/order"
)

const banner = `
welcome to papa-pizza, the sequel!!!
your local pizza store's customer database!
`

// App wires the REPL to the services. It owns the process-local session,
// which it hands to every gated operation explicitly.
type App struct {
	store    *sql.DB
	accounts account.Service
	catalog  menu.Service
	orders   order.Service

	router  *Router
	session account.Session

	reader *bufio.Reader
	out    io.Writer
	exitFn func(code int)
}

func NewApp(store *sql.DB, accounts account.Service, catalog menu.Service, orders order.Service) *App {
	a := &App{
		store:    store,
		accounts: accounts,
		catalog:  catalog,
		orders:   orders,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		exitFn:   os.Exit,
	}

	a.router = NewRouter(accounts, func() account.Session { return a.session }, a.registerOrLogin)
	a.registerCommands()
	return a
}

func (a *App) registerCommands() {
	a.router.Register(
		&Command{Name: "help", Description: "show this help", Privilege: public, Handler: a.cmdHelp},
		&Command{Name: "h", Description: "alias help", Privilege: public, Handler: a.cmdHelp},
		&Command{Name: "quit", Description: "exit program", Privilege: public, Handler: a.cmdQuit},
		&Command{Name: "exit", Description: "alias quit", Privilege: public, Handler: a.cmdExit},

		&Command{Name: "menu", Description: "show menu", Privilege: userLevel, Handler: a.cmdMenu},
		&Command{Name: "order create", Description: "create order", Privilege: userLevel,
			Args:    []Arg{{Name: "type", Required: true}, {Name: "loyalty"}},
			Handler: a.cmdOrderCreate},
		&Command{Name: "order list", Description: "list orders", Privilege: userLevel, Handler: a.cmdOrderList},
		&Command{Name: "order switch", Description: "switch current order", Privilege: userLevel,
			Args:    []Arg{{Name: "id", Required: true}},
			Handler: a.cmdOrderSwitch},
		&Command{Name: "order remove", Description: "remove order", Privilege: userLevel,
			Args:    []Arg{{Name: "id", Required: true}},
			Handler: a.cmdOrderRemove},
		&Command{Name: "order item add", Description: "add item", Privilege: userLevel,
			Args:    []Arg{{Name: "name"}, {Name: "qty"}},
			Handler: a.cmdOrderItemAdd},
		&Command{Name: "order item remove", Description: "remove item", Privilege: userLevel,
			Args:    []Arg{{Name: "name"}, {Name: "qty"}},
			Handler: a.cmdOrderItemRemove},
		&Command{Name: "order process", Description: "pay current order", Privilege: userLevel, Handler: a.cmdOrderProcess},
		&Command{Name: "order summary", Description: "sales summary", Privilege: userLevel, Handler: a.cmdOrderSummary},

		&Command{Name: "account whoami", Description: "current user", Privilege: public, Handler: a.cmdWhoami},
		&Command{Name: "account login", Description: "login", Privilege: public,
			Args:    []Arg{{Name: "username"}, {Name: "password"}},
			Handler: a.cmdLogin},
		&Command{Name: "account logout", Description: "logout", Privilege: public, Handler: a.cmdLogout},
		&Command{Name: "account register", Description: "register", Privilege: public,
			Args:    []Arg{{Name: "username"}, {Name: "password"}},
			Handler: a.cmdRegister},

		&Command{Name: "admin accounts list", Description: "list accounts", Privilege: adminOnly, Handler: a.cmdAdminAccountsList},
		&Command{Name: "admin accounts promote", Description: "promote user", Privilege: adminOnly,
			Args:    []Arg{{Name: "id", Required: true}},
			Handler: a.cmdAdminPromote},
		&Command{Name: "admin accounts demote", Description: "demote user", Privilege: adminOnly,
			Args:    []Arg{{Name: "id", Required: true}},
			Handler: a.cmdAdminDemote},
		&Command{Name: "admin menu add", Description: "add menu item", Privilege: adminOnly,
			Args:    []Arg{{Name: "name"}, {Name: "price"}},
			Handler: a.cmdAdminMenuAdd},
		&Command{Name: "admin menu update", Description: "update menu price", Privilege: adminOnly,
			Args:    []Arg{{Name: "name"}, {Name: "price"}},
			Handler: a.cmdAdminMenuUpdate},
		&Command{Name: "admin menu delete", Description: "delete menu item", Privilege: adminOnly,
			Args:    []Arg{{Name: "name"}},
			Handler: a.cmdAdminMenuDelete},
		&Command{Name: "admin report revenue", Description: "revenue by user", Privilege: adminOnly, Handler: a.cmdAdminReportRevenue},
		&Command{Name: "admin report top-items", Description: "top items", Privilege: adminOnly, Handler: a.cmdAdminReportTopItems},
		&Command{Name: "admin report stats", Description: "order stats", Privilege: adminOnly, Handler: a.cmdAdminReportStats},
		&Command{Name: "admin report discount", Description: "discount usage", Privilege: adminOnly, Handler: a.cmdAdminReportDiscount},
		&Command{Name: "admin db reset", Description: "reset database", Privilege: adminOnly, Handler: a.cmdAdminDBReset},
	)
}

// Run starts the read-eval-print loop. It returns on EOF; quit exits the
// process directly after confirmation.
func (a *App) Run(ctx context.Context) {
	fmt.Fprint(a.out, banner)
	fmt.Fprintln(a.out, "for more information, type 'help' or 'h' at any time.")
	fmt.Fprintln(a.out, "to exit the program, type 'quit'.")

	for {
		line, err := promptText(a.reader, "\n> ", a.out)
		if err != nil {
			fmt.Fprintln(a.out)
			return
		}
		if line == "" {
			continue
		}
		if err := a.router.Dispatch(ctx, line); err != nil {
			fmt.Fprintln(a.out, err.Error())
		}
	}
}

// DispatchOnce runs a single command line, for one-shot invocations from
// process args before the REPL starts.
func (a *App) DispatchOnce(ctx context.Context, line string) error {
	return a.router.Dispatch(ctx, line)
}

// currentAccount resolves the session's account.
func (a *App) currentAccount(ctx context.Context) (account.Account, error) {
	return a.accounts.Current(ctx, a.session)
}
