// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/go-petr/account-engine/internal/domain"
	"github.com/go-petr/account-engine/pkg/dbpkg"
	"github.com/go-petr/account-engine/pkg/errorspkg"
)

// RepoPGS facilitates account repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns account RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const createQuery = `
INSERT INTO
    accounts (holder_name, balance)
VALUES
    ($1, $2)
RETURNING id, holder_name, balance
`

const updateQuery = `
UPDATE accounts
SET holder_name = $2, balance = $3
WHERE id = $1
RETURNING id, holder_name, balance
`

// Save inserts the account when its id is zero and updates it otherwise.
func (r *RepoPGS) Save(ctx context.Context, a domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var row *sql.Row
	if a.ID == 0 {
		row = r.db.QueryRowContext(ctx, createQuery, a.HolderName, a.Balance)
	} else {
		row = r.db.QueryRowContext(ctx, updateQuery, a.ID, a.HolderName, a.Balance)
	}

	var saved domain.Account

	err := row.Scan(
		&saved.ID,
		&saved.HolderName,
		&saved.Balance,
	)

	if err != nil {
		l.Error().Err(err).Msgf("Save(ctx, %+v)", a)

		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Constraint == "accounts_balance_check" {
			return domain.Account{}, domain.ErrInsufficientBalance
		}

		return domain.Account{}, errorspkg.ErrInternal
	}

	return saved, nil
}

const deleteQuery = `
DELETE FROM accounts
WHERE id = $1
`

// Delete removes the account with the given id.
func (r *RepoPGS) Delete(ctx context.Context, id int64) error {
	l := zerolog.Ctx(ctx)

	res, err := r.db.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	n, err := res.RowsAffected()
	if err != nil {
		l.Error().Err(err).Send()
		return errorspkg.ErrInternal
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

const getQuery = `
SELECT
	id, holder_name, balance
FROM accounts
WHERE id = $1
`

// Get returns the account with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.HolderName,
		&a.Balance,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return domain.Account{}, errorspkg.ErrInternal
	}

	return a, nil
}

const listQuery = `
SELECT
	id, holder_name, balance
FROM accounts
ORDER BY id
`

// List returns all accounts ordered by id.
func (r *RepoPGS) List(ctx context.Context) ([]domain.Account, error) {
	l := zerolog.Ctx(ctx)

	rows, err := r.db.QueryContext(ctx, listQuery)
	if err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}
	defer rows.Close()

	items := []domain.Account{}

	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.HolderName, &a.Balance); err != nil {
			l.Error().Err(err).Send()
			return nil, errorspkg.ErrInternal
		}

		items = append(items, a)
	}

	if err := rows.Close(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	if err := rows.Err(); err != nil {
		l.Error().Err(err).Send()
		return nil, errorspkg.ErrInternal
	}

	return items, nil
}
