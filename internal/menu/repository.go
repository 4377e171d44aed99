package menu

import (
	"context"
	"database/sql"
	"errors"

	"papa-pizza/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByName(ctx context.Context, name string) (*Item, error)
	Create(ctx context.Context, name string, price float64) (*Item, error)
	UpdatePrice(ctx context.Context, name string, price float64) error
	Delete(ctx context.Context, name string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, price FROM menu ORDER BY id",
	)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list menu", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) GetByName(ctx context.Context, name string) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, price FROM menu WHERE lower(name) = lower($1)",
		name,
	).Scan(&it.ID, &it.Name, &it.Price)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repository) Create(ctx context.Context, name string, price float64) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO menu (name, price) VALUES ($1, $2) RETURNING id, name, price",
		name, price,
	).Scan(&it.ID, &it.Name, &it.Price)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert menu item",
			zap.String("name", name),
			zap.Error(err),
		)
		return nil, translatePgError(err)
	}
	return &it, nil
}

func (r *repository) UpdatePrice(ctx context.Context, name string, price float64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE menu SET price = $1 WHERE lower(name) = lower($2)",
		price, name,
	)
	if err != nil {
		return translatePgError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM menu WHERE lower(name) = lower($1)",
		name,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func translatePgError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case PgUniqueViolation:
			return ErrItemNameExists
		case PgCheckViolation:
			return ErrInvalidPrice
		}
	}
	return err
}
