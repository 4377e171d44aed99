package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context) ([]Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Item), args.Error(1)
}

func (m *MockRepository) GetByName(ctx context.Context, name string) (*Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, name string, price float64) (*Item, error) {
	args := m.Called(ctx, name, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Item), args.Error(1)
}

func (m *MockRepository) UpdatePrice(ctx context.Context, name string, price float64) error {
	args := m.Called(ctx, name, price)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func TestService_RefreshAndFind(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("List", ctx).Return([]Item{
		{ID: 1, Name: "Pepperoni", Price: 21.00},
		{ID: 2, Name: "Margherita", Price: 18.50},
	}, nil)

	require.NoError(t, svc.Refresh(ctx))
	assert.Len(t, svc.Items(), 2)

	it, ok := svc.Find("MARGHERITA")
	require.True(t, ok)
	assert.Equal(t, 18.50, it.Price)

	_, ok = svc.Find("Calzone")
	assert.False(t, ok)
}

func TestService_Add_RefreshesCache(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	created := &Item{ID: 7, Name: "Calzone", Price: 17.00}
	repo.On("Create", ctx, "Calzone", 17.00).Return(created, nil)
	repo.On("List", ctx).Return([]Item{*created}, nil)

	it, err := svc.Add(ctx, "Calzone", 17.00)
	require.NoError(t, err)
	assert.Equal(t, 7, it.ID)

	// mutation must be followed by a cache reload
	repo.AssertCalled(t, "List", ctx)
	assert.Len(t, svc.Items(), 1)
}

func TestService_Add_RejectsNonPositivePrice(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), "Freebie", 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Add_RejectsBlankName(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	_, err := svc.Add(context.Background(), "   ", 9.99)
	assert.ErrorIs(t, err, ErrInvalidName)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdatePrice_RejectsNonPositivePrice(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	err := svc.UpdatePrice(context.Background(), "Pepperoni", -5)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	repo.AssertNotCalled(t, "UpdatePrice", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Remove_RefreshesCache(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)
	ctx := context.Background()

	repo.On("Delete", ctx, "Hawaiian").Return(nil)
	repo.On("List", ctx).Return([]Item{}, nil)

	require.NoError(t, svc.Remove(ctx, "Hawaiian"))
	repo.AssertCalled(t, "List", ctx)
}
