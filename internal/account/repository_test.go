package account

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO accounts \(username, password, privilege_level\) VALUES \(\$1, \$2, \$3\) RETURNING id, username, password, privilege_level`).
			WithArgs("mario", "hashed", 0).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "privilege_level"}).
				AddRow(2, "mario", "hashed", 0))

		acc, err := repo.Create(ctx, "mario", "hashed", PrivilegeUser)
		assert.NoError(t, err)
		assert.Equal(t, 2, acc.ID)
		assert.Equal(t, PrivilegeUser, acc.Privilege)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO accounts`).
			WithArgs("mario", "hashed", 0).
			WillReturnError(&pq.Error{Code: pq.ErrorCode(PgUniqueViolation)})

		_, err := repo.Create(ctx, "mario", "hashed", PrivilegeUser)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO accounts`).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.Create(ctx, "mario", "hashed", PrivilegeUser)
		assert.Error(t, err)
	})
}

func TestRepository_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("CaseInsensitive", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, password, privilege_level FROM accounts WHERE lower\(username\) = lower\(\$1\)`).
			WithArgs("ADMIN").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "privilege_level"}).
				AddRow(1, "admin", "hashed", 1))

		acc, err := repo.FindByUsername(ctx, "ADMIN")
		assert.NoError(t, err)
		assert.Equal(t, PrivilegeAdmin, acc.Privilege)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, username, password, privilege_level FROM accounts`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "privilege_level"}))

		_, err := repo.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestRepository_SetPrivilege(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE accounts SET privilege_level = \$1 WHERE id = \$2`).
			WithArgs(1, 2).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetPrivilege(ctx, 2, PrivilegeAdmin))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE accounts SET privilege_level`).
			WithArgs(0, 99).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetPrivilege(ctx, 99, PrivilegeUser), ErrAccountNotFound)
	})
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT id, username, password, privilege_level FROM accounts ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "privilege_level"}).
			AddRow(1, "admin", "hashed", 1).
			AddRow(2, "mario", "hashed", 0))

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "mario", accounts[1].Username)
}
