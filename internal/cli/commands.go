package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"papa-pizza/internal/account"
	"papa-pizza/internal/order"
	"papa-pizza/internal/pricing"
)

func (a *App) cmdHelp(ctx context.Context, _ []string) error {
	fmt.Fprintln(a.out, "available commands:")
	for _, c := range a.router.Visible(ctx) {
		line := c.Name
		if usage := c.Usage(); usage != "" {
			line += " " + usage
		}
		fmt.Fprintf(a.out, "%-40s - %s\n", line, c.Description)
	}
	return nil
}

func (a *App) cmdQuit(_ context.Context, _ []string) error {
	if promptYesNo(a.reader, "are you sure you want to quit? (y/N): ", a.out) {
		fmt.Fprintln(a.out, "okay, see ya!")
		a.exitFn(0)
		return nil
	}
	fmt.Fprintln(a.out, "continuing...")
	return nil
}

func (a *App) cmdExit(_ context.Context, _ []string) error {
	fmt.Fprintln(a.out, "use quit to exit")
	return nil
}

func (a *App) cmdMenu(_ context.Context, _ []string) error {
	fmt.Fprintln(a.out, "papa-pizza's famous menu")
	items := a.catalog.Items()
	if len(items) == 0 {
		fmt.Fprintln(a.out, "menu empty")
		return nil
	}
	fmt.Fprintln(a.out, "\npizza:")
	for _, it := range items {
		fmt.Fprintf(a.out, "%s: %s\n", it.Name, money(it.Price))
	}
	return nil
}

// -- account commands --

func (a *App) cmdWhoami(ctx context.Context, _ []string) error {
	acc, err := a.currentAccount(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "no user currently logged in")
		return nil
	}
	prefix := ""
	if acc.Privilege == account.PrivilegeAdmin {
		prefix = "admin: "
	}
	fmt.Fprintf(a.out, "you are logged in as %s%s\n", prefix, acc.Username)
	return nil
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	if !a.session.IsAnonymous() {
		fmt.Fprintln(a.out, "already logged in")
		if !promptYesNo(a.reader, "log out first? (y/N): ", a.out) {
			return nil
		}
		a.session = account.Anonymous()
		a.orders.ClearCurrent()
	}

	username, password, err := a.credentials(args)
	if err != nil {
		return err
	}

	sess, acc, err := a.accounts.Login(ctx, username, password)
	if err != nil {
		return err
	}
	a.session = sess
	// the current-order pointer belongs to the previous identity
	a.orders.ClearCurrent()

	prefix := ""
	if acc.Privilege == account.PrivilegeAdmin {
		prefix = "admin: "
	}
	fmt.Fprintf(a.out, "logged in as %s%s\n", prefix, acc.Username)
	return nil
}

func (a *App) cmdLogout(_ context.Context, _ []string) error {
	if a.session.IsAnonymous() {
		fmt.Fprintln(a.out, "no user logged in")
		return nil
	}
	a.session = account.Anonymous()
	a.orders.ClearCurrent()
	fmt.Fprintln(a.out, "logged out")
	return nil
}

func (a *App) cmdRegister(ctx context.Context, args []string) error {
	username, password, err := a.credentials(args)
	if err != nil {
		return err
	}

	grantAdmin := false
	if a.accounts.IsAdmin(ctx, a.session) {
		grantAdmin = promptYesNo(a.reader, "set new user as admin? (dangerous) (y/N): ", a.out)
	}

	if _, err := a.accounts.Register(ctx, a.session, username, password, grantAdmin); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "account created")
	return nil
}

// credentials returns username and password from args, prompting for
// whichever is missing.
func (a *App) credentials(args []string) (string, string, error) {
	var username, password string
	var err error

	if len(args) > 0 {
		username = args[0]
	} else {
		username, err = promptText(a.reader, "username: ", a.out)
		if err != nil {
			return "", "", err
		}
	}

	if len(args) > 1 {
		password = args[1]
	} else {
		password, err = promptPassword(a.reader, "password: ", a.out)
		if err != nil {
			return "", "", err
		}
	}
	return username, password, nil
}

// registerOrLogin is the inline flow offered when an anonymous session hits
// a gated command.
func (a *App) registerOrLogin(ctx context.Context) error {
	fmt.Fprintln(a.out, "please login/register first")
	ans, err := promptText(a.reader, "would you like to (r)egister or (l)ogin?: ", a.out)
	if err != nil {
		return err
	}
	switch strings.ToLower(ans) {
	case "r":
		return a.cmdRegister(ctx, nil)
	case "l":
		return a.cmdLogin(ctx, nil)
	default:
		fmt.Fprintln(a.out, "invalid option")
		return nil
	}
}

// -- order commands --

func (a *App) cmdOrderCreate(ctx context.Context, args []string) error {
	serviceType, err := pricing.ParseServiceType(args[0])
	if err != nil {
		return err
	}

	var loyalty bool
	if len(args) > 1 {
		loyalty = parseYesNo(args[1]) || strings.EqualFold(args[1], "loyalty")
	} else {
		loyalty = promptYesNo(a.reader, "does customer have a loyalty card? (y/N): ", a.out)
	}

	acc, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}

	o, err := a.orders.Create(ctx, &acc.ID, serviceType, loyalty)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "order #%d created\n", o.ID)
	return nil
}

func (a *App) cmdOrderList(ctx context.Context, _ []string) error {
	acc, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}

	orders, err := a.orders.Visible(ctx, acc.ID, acc.Privilege == account.PrivilegeAdmin)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "no orders found")
		return nil
	}
	for i := range orders {
		a.printOrder(&orders[i])
	}
	return nil
}

func (a *App) cmdOrderSwitch(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	acc, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}

	if err := a.orders.Select(ctx, acc.ID, acc.Privilege == account.PrivilegeAdmin, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "switched to order #%d\n", id)
	return nil
}

func (a *App) cmdOrderRemove(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	acc, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}

	if err := a.orders.Delete(ctx, acc.ID, acc.Privilege == account.PrivilegeAdmin, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "order #%d removed\n", id)
	return nil
}

func (a *App) cmdOrderItemAdd(ctx context.Context, args []string) error {
	name, qty, err := a.itemNameAndQty(args, 1)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		raw, err := promptText(a.reader, "how many?: ", a.out)
		if err != nil {
			return err
		}
		if raw != "" {
			if qty, err = parseID(raw); err != nil {
				return order.ErrInvalidQuantity
			}
		}
	}

	o, err := a.ensureCurrentOrder(ctx)
	if err != nil || o == nil {
		return err
	}

	added, err := a.orders.AddItems(ctx, o.ID, name, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "added %d x %s to order #%d\n", added, name, o.ID)
	return nil
}

func (a *App) cmdOrderItemRemove(ctx context.Context, args []string) error {
	name, qty, err := a.itemNameAndQty(args, 0)
	if err != nil {
		return err
	}
	if qty == 0 {
		raw, err := promptText(a.reader, "how many to remove?: ", a.out)
		if err != nil {
			return err
		}
		if qty, err = parseID(raw); err != nil {
			return order.ErrInvalidQuantity
		}
	}

	o, err := a.ensureCurrentOrder(ctx)
	if err != nil || o == nil {
		return err
	}

	removed, err := a.orders.RemoveItems(ctx, o.ID, name, qty)
	if err != nil {
		return err
	}
	if removed == 0 {
		fmt.Fprintln(a.out, "item not found in order")
		return nil
	}
	fmt.Fprintf(a.out, "removed %d x %s\n", removed, name)
	return nil
}

// itemNameAndQty resolves the item name and quantity from args, prompting
// for a missing name. Multi-word names are entered through the prompt.
func (a *App) itemNameAndQty(args []string, defaultQty int) (string, int, error) {
	var name string
	var err error

	if len(args) > 0 {
		name = args[0]
	} else {
		name, err = promptText(a.reader, "menu item: ", a.out)
		if err != nil {
			return "", 0, err
		}
	}

	qty := defaultQty
	if len(args) > 1 {
		if qty, err = parseID(args[1]); err != nil {
			return "", 0, order.ErrInvalidQuantity
		}
	}
	return name, qty, nil
}

// ensureCurrentOrder returns the mutable current order, walking the user
// through selecting or creating one when the pointer is empty. A nil order
// with nil error means the user declined.
func (a *App) ensureCurrentOrder(ctx context.Context) (*order.Order, error) {
	acting, err := a.currentAccount(ctx)
	if err != nil {
		return nil, err
	}
	actingAdmin := acting.Privilege == account.PrivilegeAdmin

	o, err := a.orders.Current(ctx)
	if err == nil && !actingAdmin && !o.OwnedBy(acting.ID) {
		// pointer left behind by another identity
		a.orders.ClearCurrent()
		err = order.ErrNoCurrentOrder
	}
	if err == nil {
		if o.Paid {
			fmt.Fprintln(a.out, "order already paid")
			if promptYesNo(a.reader, "switch to another? (y/N): ", a.out) {
				return nil, a.promptSwitch(ctx)
			}
			return nil, nil
		}
		return o, nil
	}
	if !errors.Is(err, order.ErrNoCurrentOrder) {
		return nil, err
	}

	fmt.Fprintln(a.out, "no current order selected")

	visible, err := a.orders.Visible(ctx, acting.ID, actingAdmin)
	if err != nil {
		return nil, err
	}

	if len(visible) > 0 {
		if promptYesNo(a.reader, "select an order? (y/N): ", a.out) {
			return nil, a.promptSwitch(ctx)
		}
		return nil, nil
	}

	if promptYesNo(a.reader, "create an order? (y/N): ", a.out) {
		raw, err := promptText(a.reader, "order type? (pickup/delivery): ", a.out)
		if err != nil {
			return nil, err
		}
		return nil, a.cmdOrderCreate(ctx, []string{raw})
	}
	return nil, nil
}

func (a *App) promptSwitch(ctx context.Context) error {
	if err := a.cmdOrderList(ctx, nil); err != nil {
		return err
	}
	raw, err := promptText(a.reader, "enter order id to switch: ", a.out)
	if err != nil {
		return err
	}
	return a.cmdOrderSwitch(ctx, []string{raw})
}

func (a *App) cmdOrderProcess(ctx context.Context, _ []string) error {
	o, err := a.ensureCurrentOrder(ctx)
	if err != nil || o == nil {
		return err
	}

	quote, err := a.orders.Quote(o)
	if err != nil {
		return err
	}

	extras := make([]string, 0, 3)
	if quote.DiscountApplied {
		extras = append(extras, fmt.Sprintf("%.0f%% discount", pricing.DiscountRate*100))
	}
	if o.ServiceType == pricing.Delivery {
		extras = append(extras, fmt.Sprintf("%s delivery", money(pricing.DeliveryFee)))
	}
	extras = append(extras, fmt.Sprintf("%.0f%% gst", pricing.GSTRate*100))
	fmt.Fprintf(a.out, "total for order #%d is %s, including %s.\n",
		o.ID, money(quote.Total), strings.Join(extras, " and "))

	if !promptYesNo(a.reader, "pay now? (y/N): ", a.out) {
		fmt.Fprintln(a.out, "payment cancelled")
		return nil
	}

	if _, err := a.orders.Pay(ctx, o.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "payment successful")
	return nil
}

func (a *App) cmdOrderSummary(ctx context.Context, _ []string) error {
	acc, err := a.currentAccount(ctx)
	if err != nil {
		return err
	}
	isAdmin := acc.Privilege == account.PrivilegeAdmin

	orders, quotes, total, err := a.orders.Summary(ctx, acc.ID, isAdmin)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "no sales")
		return nil
	}

	for i := range orders {
		owner := ""
		if isAdmin && orders[i].CustomerID != nil {
			owner = fmt.Sprintf(" (user #%d)", *orders[i].CustomerID)
		}
		fmt.Fprintf(a.out, "order #%d%s: %s\n", orders[i].ID, owner, money(quotes[i].Total))
	}
	fmt.Fprintf(a.out, "total sales: %s\n", money(total))
	return nil
}

func parseID(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 1 {
		return 0, errors.New("invalid id")
	}
	return v, nil
}
