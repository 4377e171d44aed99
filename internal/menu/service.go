package menu

import (
	"context"
	"strings"

	"papa-pizza/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for the menu catalog.
type Service interface {
	// Items returns the cached menu snapshot.
	Items() []Item
	// Find resolves an item by case-insensitive name from the cache.
	Find(name string) (*Item, bool)
	// Refresh reloads the cache from the store.
	Refresh(ctx context.Context) error
	Add(ctx context.Context, name string, price float64) (*Item, error)
	UpdatePrice(ctx context.Context, name string, price float64) error
	Remove(ctx context.Context, name string) error
}

// service owns the process-wide menu cache. Every administrative mutation
// goes through Refresh so the cache never drifts from the store.
type service struct {
	repo  Repository
	cache []Item
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Items() []Item {
	return s.cache
}

func (s *service) Find(name string) (*Item, bool) {
	for i := range s.cache {
		if strings.EqualFold(s.cache[i].Name, name) {
			return &s.cache[i], true
		}
	}
	return nil, false
}

func (s *service) Refresh(ctx context.Context) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to refresh menu cache", zap.Error(err))
		return err
	}
	s.cache = items
	return nil
}

func (s *service) Add(ctx context.Context, name string, price float64) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	item, err := s.repo.Create(ctx, name, price)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *service) UpdatePrice(ctx context.Context, name string, price float64) error {
	if price <= 0 {
		return ErrInvalidPrice
	}

	if err := s.repo.UpdatePrice(ctx, name, price); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

func (s *service) Remove(ctx context.Context, name string) error {
	if err := s.repo.Delete(ctx, name); err != nil {
		return err
	}
	return s.Refresh(ctx)
}
