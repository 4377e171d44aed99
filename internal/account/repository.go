package account

import (
	"context"
	"database/sql"
	"errors"

	"papa-pizza/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, username, hashedPassword string, level Privilege) (Account, error)
	FindByUsername(ctx context.Context, username string) (Account, error)
	FindByID(ctx context.Context, id int) (Account, error)
	List(ctx context.Context) ([]Account, error)
	SetPrivilege(ctx context.Context, id int, level Privilege) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, hashedPassword string, level Privilege) (Account, error) {
	var a Account
	err := r.db.QueryRowContext(ctx,
		"INSERT INTO accounts (username, password, privilege_level) VALUES ($1, $2, $3) RETURNING id, username, password, privilege_level",
		username, hashedPassword, int(level),
	).Scan(&a.ID, &a.Username, &a.Password, &a.Privilege)

	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert account",
			zap.String("username", username),
			zap.Error(err),
		)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return Account{}, ErrUsernameTaken
		}
		return Account{}, err
	}

	return a, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (Account, error) {
	var a Account
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password, privilege_level FROM accounts WHERE lower(username) = lower($1)",
		username,
	).Scan(&a.ID, &a.Username, &a.Password, &a.Privilege)
	if err == sql.ErrNoRows {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}

func (r *repository) FindByID(ctx context.Context, id int) (Account, error) {
	var a Account
	err := r.db.QueryRowContext(ctx,
		"SELECT id, username, password, privilege_level FROM accounts WHERE id = $1",
		id,
	).Scan(&a.ID, &a.Username, &a.Password, &a.Privilege)
	if err == sql.ErrNoRows {
		return Account{}, ErrAccountNotFound
	}
	return a, err
}

func (r *repository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, username, password, privilege_level FROM accounts ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Username, &a.Password, &a.Privilege); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *repository) SetPrivilege(ctx context.Context, id int, level Privilege) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE accounts SET privilege_level = $1 WHERE id = $2",
		int(level), id,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
