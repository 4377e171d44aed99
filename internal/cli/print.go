package cli

import (
	"fmt"

	"papa-pizza/internal/order"
)

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// printOrder writes a one-order block: header line, grouped items, total.
func (a *App) printOrder(o *order.Order) {
	status := "unpaid"
	if o.Paid {
		status = "paid"
	}
	fmt.Fprintf(a.out, "order #%d (%s, %s)\n", o.ID, o.ServiceType, status)

	counts := map[string]int{}
	names := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		if counts[it.Name] == 0 {
			names = append(names, it.Name)
		}
		counts[it.Name]++
	}
	for _, name := range names {
		fmt.Fprintf(a.out, "  %d x %s\n", counts[name], name)
	}

	if quote, err := a.orders.Quote(o); err == nil {
		fmt.Fprintf(a.out, "  total: %s\n", money(quote.Total))
	}
}
