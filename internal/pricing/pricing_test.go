package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name         string
		prices       []float64
		serviceType  ServiceType
		loyalty      bool
		wantTotal    float64
		wantDiscount bool
	}{
		{
			name:        "empty order pickup",
			prices:      nil,
			serviceType: Pickup,
			wantTotal:   0,
		},
		{
			name:        "pepperoni plus chicken supreme pickup",
			prices:      []float64{21.00, 23.50},
			serviceType: Pickup,
			wantTotal:   48.95,
		},
		{
			name:         "five items over threshold with delivery",
			prices:       []float64{25.50, 25.50, 25.50, 25.50, 8.00},
			serviceType:  Delivery,
			wantTotal:    123.75,
			wantDiscount: true,
		},
		{
			name:         "loyalty card discounts small order",
			prices:       []float64{18.50},
			serviceType:  Pickup,
			loyalty:      true,
			wantTotal:    19.33,
			wantDiscount: true,
		},
		{
			name:        "exactly at threshold gets no discount",
			prices:      []float64{50.00, 50.00},
			serviceType: Pickup,
			wantTotal:   110.00,
		},
		{
			name:         "just over threshold gets discount",
			prices:       []float64{50.00, 50.01},
			serviceType:  Pickup,
			wantTotal:    104.51,
			wantDiscount: true,
		},
		{
			name:        "delivery fee added before gst",
			prices:      []float64{19.00},
			serviceType: Delivery,
			wantTotal:   29.70,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Compute(tt.prices, tt.serviceType, tt.loyalty)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDiscount, q.DiscountApplied)
			assert.InDelta(t, tt.wantTotal, q.Total, 0.001)
		})
	}
}

func TestCompute_InvalidServiceType(t *testing.T) {
	_, err := Compute([]float64{10}, ServiceType(42), false)
	assert.ErrorIs(t, err, ErrInvalidServiceType)
}

func TestCompute_Idempotent(t *testing.T) {
	prices := []float64{21.00, 23.50, 25.50, 25.50, 25.50}

	first, err := Compute(prices, Delivery, false)
	require.NoError(t, err)
	second, err := Compute(prices, Delivery, false)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.True(t, first.DiscountApplied)
}

func TestParseServiceType(t *testing.T) {
	st, err := ParseServiceType("  Pickup ")
	require.NoError(t, err)
	assert.Equal(t, Pickup, st)

	st, err = ParseServiceType("DELIVERY")
	require.NoError(t, err)
	assert.Equal(t, Delivery, st)

	_, err = ParseServiceType("drone")
	assert.ErrorIs(t, err, ErrInvalidServiceType)
}
