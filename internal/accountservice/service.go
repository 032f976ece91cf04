// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/account-engine/internal/domain"
	"github.com/go-petr/account-engine/pkg/keylock"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Get(ctx context.Context, id int64) (domain.Account, error)
	Save(ctx context.Context, a domain.Account) (domain.Account, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo  Repo
	locks keylock.Locker[int64]
}

// New returns account service struct to manage account bussines logic.
func New(ar Repo) *Service {
	return &Service{repo: ar}
}

// Create creates and returns account for the given holder with the initial balance.
func (s *Service) Create(ctx context.Context, holderName string, balance decimal.Decimal) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if strings.TrimSpace(holderName) == "" {
		l.Info().Err(domain.ErrInvalidHolderName).Send()
		return domain.Account{}, domain.ErrInvalidHolderName
	}

	if balance.IsNegative() {
		l.Info().Err(domain.ErrInvalidAmount).Str("balance", balance.String()).Send()
		return domain.Account{}, domain.ErrInvalidAmount
	}

	account, err := s.repo.Save(ctx, domain.Account{HolderName: holderName, Balance: balance})
	if err != nil {
		return domain.Account{}, err
	}

	l.Debug().Int64("account_id", account.ID).Msg("account created")

	return account, nil
}

// Get returns account for the given account ID.
func (s *Service) Get(ctx context.Context, id int64) (domain.Account, error) {
	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	return account, nil
}

// Deposit adds the positive amount to the account balance.
func (s *Service) Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	return s.mutate(ctx, opDeposit, id, amount, func(balance decimal.Decimal) (decimal.Decimal, error) {
		return balance.Add(amount), nil
	})
}

// Withdraw subtracts the positive amount from the account balance.
// The balance never goes below zero.
func (s *Service) Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error) {
	return s.mutate(ctx, opWithdraw, id, amount, func(balance decimal.Decimal) (decimal.Decimal, error) {
		if balance.LessThan(amount) {
			return balance, domain.ErrInsufficientBalance
		}

		return balance.Sub(amount), nil
	})
}

// mutate loads the account, applies fn to its balance and saves the result.
// Calls for the same id are serialized.
func (s *Service) mutate(
	ctx context.Context,
	op string,
	id int64,
	amount decimal.Decimal,
	fn func(balance decimal.Decimal) (decimal.Decimal, error),
) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	if !amount.IsPositive() {
		l.Info().Err(domain.ErrInvalidAmount).Str("amount", amount.String()).Send()
		observe(op, domain.ErrInvalidAmount)

		return domain.Account{}, domain.ErrInvalidAmount
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		observe(op, err)
		return domain.Account{}, err
	}

	balance, err := fn(account.Balance)
	if err != nil {
		l.Info().Err(err).
			Int64("account_id", id).
			Str("balance", account.Balance.String()).
			Str("amount", amount.String()).
			Send()
		observe(op, err)

		return domain.Account{}, err
	}

	account.Balance = balance

	saved, err := s.repo.Save(ctx, account)
	if err != nil {
		observe(op, err)
		return domain.Account{}, err
	}

	l.Debug().Int64("account_id", id).Str("op", op).Str("amount", amount.String()).Send()
	observe(op, nil)

	return saved, nil
}

// List returns all accounts. It never returns a nil slice on success.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if accounts == nil {
		accounts = []domain.Account{}
	}

	return accounts, nil
}

// Delete removes the account and returns it as it was before the removal.
func (s *Service) Delete(ctx context.Context, id int64) (domain.Account, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	account, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.Account{}, err
	}

	zerolog.Ctx(ctx).Debug().Int64("account_id", id).Msg("account deleted")

	return account, nil
}
