package order

import (
	"context"
	"fmt"

	"papa-pizza/internal/logger"
	"papa-pizza/internal/menu"
	"papa-pizza/internal/pricing"

	"go.uber.org/zap"
)

// Service owns the order lifecycle and the single "current order" pointer
// the REPL operates on by default.
type Service interface {
	// Create inserts a new unpaid order and makes it current.
	Create(ctx context.Context, ownerID *int, serviceType pricing.ServiceType, hasLoyaltyCard bool) (*Order, error)
	Get(ctx context.Context, id int) (*Order, error)
	// Current returns the selected order, ErrNoCurrentOrder when none is set.
	Current(ctx context.Context) (*Order, error)
	// Select points the current-order pointer at an existing visible order.
	Select(ctx context.Context, requesterID int, isAdmin bool, id int) error
	ClearCurrent()

	// AddItems appends up to qty copies of a menu item, best-effort: on a
	// mid-batch store failure the copies already inserted stay.
	AddItems(ctx context.Context, orderID int, itemName string, qty int) (int, error)
	// RemoveItems removes up to qty copies and reports how many it found.
	RemoveItems(ctx context.Context, orderID int, itemName string, qty int) (int, error)

	// Quote prices an order without touching state.
	Quote(o *Order) (pricing.Quote, error)
	// Pay finalizes the order: computes the quote, persists paid plus the
	// discount flag, and freezes the item list.
	Pay(ctx context.Context, orderID int) (pricing.Quote, error)

	Delete(ctx context.Context, requesterID int, isAdmin bool, orderID int) error
	// Visible lists every order for admins, only the requester's otherwise.
	Visible(ctx context.Context, requesterID int, isAdmin bool) ([]Order, error)
	// Summary re-prices the requester's paid orders and returns the grand total.
	Summary(ctx context.Context, requesterID int, isAdmin bool) ([]Order, []pricing.Quote, float64, error)

	RevenueByUser(ctx context.Context) ([]RevenueRow, error)
	TopItems(ctx context.Context) ([]TopItemRow, error)
	PaidStats(ctx context.Context) (Stats, error)
	DiscountUsage(ctx context.Context) (DiscountUsage, error)
}

const topItemsLimit = 10

type service struct {
	repo      Repository
	catalog   menu.Service
	currentID *int
}

func NewService(repo Repository, catalog menu.Service) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) Create(ctx context.Context, ownerID *int, serviceType pricing.ServiceType, hasLoyaltyCard bool) (*Order, error) {
	if !serviceType.Valid() {
		return nil, pricing.ErrInvalidServiceType
	}

	id, err := s.repo.Insert(ctx, ownerID, serviceType, hasLoyaltyCard)
	if err != nil {
		return nil, err
	}
	s.currentID = &id

	logger.FromCtx(ctx).Info("order created",
		zap.Int("order_id", id),
		zap.String("service_type", serviceType.String()),
		zap.Bool("loyalty", hasLoyaltyCard),
	)
	return s.repo.GetByID(ctx, id)
}

func (s *service) Get(ctx context.Context, id int) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Current(ctx context.Context) (*Order, error) {
	if s.currentID == nil {
		return nil, ErrNoCurrentOrder
	}
	o, err := s.repo.GetByID(ctx, *s.currentID)
	if err == ErrOrderNotFound {
		s.currentID = nil
		return nil, ErrNoCurrentOrder
	}
	return o, err
}

func (s *service) Select(ctx context.Context, requesterID int, isAdmin bool, id int) error {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	// non-admins only see their own orders, so an alien id reads as missing
	if !isAdmin && !o.OwnedBy(requesterID) {
		return ErrOrderNotFound
	}
	s.currentID = &o.ID
	return nil
}

func (s *service) ClearCurrent() {
	s.currentID = nil
}

func (s *service) AddItems(ctx context.Context, orderID int, itemName string, qty int) (int, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}
	if qty > pricing.MaxBatchItemAdd {
		return 0, ErrBatchTooLarge
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if o.Paid {
		return 0, ErrOrderPaid
	}

	item, ok := s.catalog.Find(itemName)
	if !ok {
		return 0, ErrUnknownMenuItem
	}

	added := 0
	for i := 0; i < qty; i++ {
		if err := s.repo.AddItem(ctx, orderID, item.ID); err != nil {
			// earlier inserts stay; report how far we got
			return added, fmt.Errorf("failed after adding %d of %d: %w", added, qty, err)
		}
		added++
	}

	logger.FromCtx(ctx).Info("items added",
		zap.Int("order_id", orderID),
		zap.String("item", item.Name),
		zap.Int("quantity", added),
	)
	return added, nil
}

func (s *service) RemoveItems(ctx context.Context, orderID int, itemName string, qty int) (int, error) {
	if qty <= 0 {
		return 0, ErrInvalidQuantity
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return 0, err
	}
	if o.Paid {
		return 0, ErrOrderPaid
	}

	item, ok := s.catalog.Find(itemName)
	if !ok {
		return 0, ErrUnknownMenuItem
	}

	removed := 0
	for i := 0; i < qty; i++ {
		found, err := s.repo.RemoveItem(ctx, orderID, item.ID)
		if err != nil {
			return removed, err
		}
		if !found {
			break
		}
		removed++
	}
	return removed, nil
}

func (s *service) Quote(o *Order) (pricing.Quote, error) {
	return pricing.Compute(o.Prices(), o.ServiceType, o.HasLoyaltyCard)
}

func (s *service) Pay(ctx context.Context, orderID int) (pricing.Quote, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return pricing.Quote{}, err
	}
	if o.Paid {
		return pricing.Quote{}, ErrOrderPaid
	}

	quote, err := s.Quote(o)
	if err != nil {
		return pricing.Quote{}, err
	}

	if err := s.repo.SetPaidAndDiscount(ctx, orderID, true, quote.DiscountApplied); err != nil {
		return pricing.Quote{}, err
	}

	logger.FromCtx(ctx).Info("order paid",
		zap.Int("order_id", orderID),
		zap.Float64("total", quote.Total),
		zap.Bool("discounted", quote.DiscountApplied),
	)
	return quote, nil
}

func (s *service) Delete(ctx context.Context, requesterID int, isAdmin bool, orderID int) error {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !isAdmin && !o.OwnedBy(requesterID) {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, orderID); err != nil {
		return err
	}
	if s.currentID != nil && *s.currentID == orderID {
		s.currentID = nil
	}
	return nil
}

func (s *service) Visible(ctx context.Context, requesterID int, isAdmin bool) ([]Order, error) {
	opts := ListOptions{}
	if !isAdmin {
		opts.OwnerID = &requesterID
	}
	return s.repo.List(ctx, opts)
}

func (s *service) Summary(ctx context.Context, requesterID int, isAdmin bool) ([]Order, []pricing.Quote, float64, error) {
	opts := ListOptions{PaidOnly: true}
	if !isAdmin {
		opts.OwnerID = &requesterID
	}

	orders, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, nil, 0, err
	}

	quotes := make([]pricing.Quote, 0, len(orders))
	var total float64
	for i := range orders {
		q, err := s.Quote(&orders[i])
		if err != nil {
			return nil, nil, 0, err
		}
		quotes = append(quotes, q)
		total += q.Total
	}
	return orders, quotes, total, nil
}

func (s *service) RevenueByUser(ctx context.Context) ([]RevenueRow, error) {
	return s.repo.RevenueByUser(ctx)
}

func (s *service) TopItems(ctx context.Context) ([]TopItemRow, error) {
	return s.repo.TopItems(ctx, topItemsLimit)
}

func (s *service) PaidStats(ctx context.Context) (Stats, error) {
	return s.repo.PaidStats(ctx)
}

func (s *service) DiscountUsage(ctx context.Context) (DiscountUsage, error) {
	return s.repo.DiscountUsage(ctx)
}
