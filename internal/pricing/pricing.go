// Package pricing computes order totals. It is the single source of truth
// for the discount/delivery-fee/GST formula; the order_totals database view
// must stay in agreement with Quote.
package pricing

import (
	"errors"
	"math"
	"strings"
)

const (
	GSTRate           = 0.10
	DiscountRate      = 0.05
	DeliveryFee       = 8.00
	DiscountThreshold = 100.0
	MaxBatchItemAdd   = 10
)

var ErrInvalidServiceType = errors.New("invalid service type")

type ServiceType int

const (
	Pickup ServiceType = iota
	Delivery
)

func (s ServiceType) String() string {
	switch s {
	case Pickup:
		return "pickup"
	case Delivery:
		return "delivery"
	default:
		return "unknown"
	}
}

func (s ServiceType) Valid() bool {
	return s == Pickup || s == Delivery
}

// ParseServiceType maps user input to a service type, case-insensitively.
func ParseServiceType(raw string) (ServiceType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pickup":
		return Pickup, nil
	case "delivery":
		return Delivery, nil
	default:
		return 0, ErrInvalidServiceType
	}
}

// Quote is the result of pricing one order.
type Quote struct {
	Base            float64
	Total           float64
	DiscountApplied bool
}

// Compute prices a set of item prices. The discount is decided from the raw
// base on every call, so repeat calls over the same items never compound.
func Compute(prices []float64, serviceType ServiceType, hasLoyaltyCard bool) (Quote, error) {
	if !serviceType.Valid() {
		return Quote{}, ErrInvalidServiceType
	}

	var base float64
	for _, p := range prices {
		base += p
	}

	q := Quote{Base: base}

	cost := base
	if base > DiscountThreshold || hasLoyaltyCard {
		q.DiscountApplied = true
		cost = base * (1 - DiscountRate)
	}
	if serviceType == Delivery {
		cost += DeliveryFee
	}

	q.Total = round2(cost * (1 + GSTRate))
	return q, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
