package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"papa-pizza/internal/db"
	"papa-pizza/internal/menu"
)

func (a *App) cmdAdminAccountsList(ctx context.Context, _ []string) error {
	accounts, err := a.accounts.List(ctx)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		fmt.Fprintf(a.out, "#%d %s (%s)\n", acc.ID, acc.Username, acc.Privilege)
	}
	return nil
}

func (a *App) cmdAdminPromote(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.accounts.Promote(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "account #%d promoted to admin\n", id)
	return nil
}

func (a *App) cmdAdminDemote(ctx context.Context, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if err := a.accounts.Demote(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "account #%d demoted to user\n", id)
	return nil
}

// -- menu management --

func (a *App) cmdAdminMenuAdd(ctx context.Context, args []string) error {
	name, price, err := a.nameAndPrice(ctx, args)
	if err != nil {
		return err
	}
	item, err := a.catalog.Add(ctx, name, price)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s added at %s\n", item.Name, money(item.Price))
	return nil
}

func (a *App) cmdAdminMenuUpdate(ctx context.Context, args []string) error {
	name, price, err := a.nameAndPrice(ctx, args)
	if err != nil {
		return err
	}
	if err := a.catalog.UpdatePrice(ctx, name, price); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s now costs %s\n", name, money(price))
	return nil
}

func (a *App) cmdAdminMenuDelete(ctx context.Context, args []string) error {
	var name string
	var err error
	if len(args) > 0 {
		name = args[0]
	} else {
		name, err = promptText(a.reader, "menu item to delete: ", a.out)
		if err != nil {
			return err
		}
	}
	if err := a.catalog.Remove(ctx, name); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s removed from menu\n", name)
	return nil
}

// nameAndPrice resolves an item name and price from args, prompting for
// what is missing. Prompting also covers multi-word names.
func (a *App) nameAndPrice(_ context.Context, args []string) (string, float64, error) {
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

	var raw string
	if len(args) > 1 {
		raw = args[1]
	} else {
		raw, err = promptText(a.reader, "price: ", a.out)
		if err != nil {
			return "", 0, err
		}
	}
	price, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(raw), "$"), 64)
	if err != nil || price <= 0 {
		return "", 0, menu.ErrInvalidPrice
	}
	return name, price, nil
}

// -- reports --

func (a *App) cmdAdminReportRevenue(ctx context.Context, _ []string) error {
	rows, err := a.orders.RevenueByUser(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "no paid orders yet")
		return nil
	}
	fmt.Fprintln(a.out, "revenue by user:")
	for _, r := range rows {
		fmt.Fprintf(a.out, "%-20s %3d orders  %s\n", r.Username, r.OrderCount, money(r.TotalRevenue))
	}
	return nil
}

func (a *App) cmdAdminReportTopItems(ctx context.Context, _ []string) error {
	rows, err := a.orders.TopItems(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "no items ordered yet")
		return nil
	}
	fmt.Fprintln(a.out, "most ordered items:")
	for i, r := range rows {
		fmt.Fprintf(a.out, "%2d. %-20s x%d\n", i+1, r.Name, r.TimesOrdered)
	}
	return nil
}

func (a *App) cmdAdminReportStats(ctx context.Context, _ []string) error {
	stats, err := a.orders.PaidStats(ctx)
	if err != nil {
		return err
	}
	if stats.PaidOrders == 0 {
		fmt.Fprintln(a.out, "no paid orders yet")
		return nil
	}
	fmt.Fprintf(a.out, "paid orders: %d\n", stats.PaidOrders)
	fmt.Fprintf(a.out, "average:     %s\n", money(stats.Avg))
	fmt.Fprintf(a.out, "smallest:    %s\n", money(stats.Min))
	fmt.Fprintf(a.out, "largest:     %s\n", money(stats.Max))
	return nil
}

func (a *App) cmdAdminReportDiscount(ctx context.Context, _ []string) error {
	usage, err := a.orders.DiscountUsage(ctx)
	if err != nil {
		return err
	}
	if usage.Total == 0 {
		fmt.Fprintln(a.out, "no orders yet")
		return nil
	}
	fmt.Fprintf(a.out, "%d of %d orders discounted (%.1f%%)\n",
		usage.Discounted, usage.Total, usage.Percent())
	return nil
}

func (a *App) cmdAdminDBReset(_ context.Context, _ []string) error {
	if !promptYesNo(a.reader, "drop ALL data and exit? (y/N): ", a.out) {
		fmt.Fprintln(a.out, "reset cancelled")
		return nil
	}
	if err := db.Reset(a.store); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "database reset. restart to reseed.")
	a.exitFn(0)
	return nil
}
