package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"shopsync/internal/common"
	"shopsync/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "username", "email", "hashed_password", "created_at", "updated_at"}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPgUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("u1", "alice", "alice@example.com", "hashed").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), &model.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", HashedPassword: "hashed",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_UniqueViolationIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPgUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = repo.Create(context.Background(), &model.User{
		ID: "u1", Username: "alice", Email: "alice@example.com", HashedPassword: "hashed",
	})
	assert.True(t, errors.Is(err, common.ErrConflict))
}

func TestUserRepo_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPgUserRepository(db)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow("u1", "alice", "alice@example.com", "hashed", now, now))

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "hashed", user.HashedPassword)
}

func TestUserRepo_FindByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewPgUserRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1`).
		WithArgs("nobody@example.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err = repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
