package order

import (
	"time"

	"papa-pizza/internal/pricing"
)

type Order struct {
	ID             int
	CustomerID     *int
	ServiceType    pricing.ServiceType
	HasLoyaltyCard bool
	Discounted     bool
	Paid           bool
	CreatedAt      time.Time
	Items          []LineItem
}

// LineItem links an order to a menu item. Price comes from the live menu row
// at read time, so historical orders re-price when the menu changes.
type LineItem struct {
	ID         int
	MenuItemID int
	Name       string
	Price      float64
}

// Prices returns the item price list in insertion order.
func (o *Order) Prices() []float64 {
	prices := make([]float64, 0, len(o.Items))
	for _, it := range o.Items {
		prices = append(prices, it.Price)
	}
	return prices
}

// OwnedBy reports whether the order belongs to the given account id.
func (o *Order) OwnedBy(accountID int) bool {
	return o.CustomerID != nil && *o.CustomerID == accountID
}

// RevenueRow is one line of the revenue-by-user report.
type RevenueRow struct {
	Username     string
	OrderCount   int
	TotalRevenue float64
}

// TopItemRow is one line of the top-items report.
type TopItemRow struct {
	Name         string
	TimesOrdered int
	Revenue      float64
}

// Stats aggregates paid order totals.
type Stats struct {
	PaidOrders int
	Avg        float64
	Min        float64
	Max        float64
}

// DiscountUsage is the discount adoption report.
type DiscountUsage struct {
	Discounted int
	Total      int
}

// Percent returns the adoption rate, 0 when there are no orders.
func (d DiscountUsage) Percent() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Discounted) / float64(d.Total) * 100
}
