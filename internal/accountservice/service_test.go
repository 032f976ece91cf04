package accountservice

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/go-petr/account-engine/internal/domain"
	"github.com/go-petr/account-engine/pkg/errorspkg"
	"github.com/go-petr/account-engine/pkg/randompkg"
)

var equateDecimal = cmp.Comparer(func(x, y decimal.Decimal) bool { return x.Equal(y) })

// accountMatcher matches accounts comparing balances by value.
type accountMatcher struct {
	want domain.Account
}

func eqAccount(a domain.Account) gomock.Matcher {
	return accountMatcher{want: a}
}

func (m accountMatcher) Matches(x interface{}) bool {
	got, ok := x.(domain.Account)
	if !ok {
		return false
	}

	return cmp.Equal(m.want, got, equateDecimal)
}

func (m accountMatcher) String() string {
	return fmt.Sprintf("is equal to %+v", m.want)
}

func randomAccount(balance int64) domain.Account {
	return domain.Account{
		ID:         randompkg.IDBetween(1, 1000),
		HolderName: randompkg.HolderName(),
		Balance:    decimal.NewFromInt(balance),
	}
}

func TestCreate(t *testing.T) {
	account := randomAccount(100)

	type input struct {
		holderName string
		balance    decimal.Decimal
	}

	testCases := []struct {
		name       string
		input      input
		buildStubs func(repo *MockRepo)
		want       domain.Account
		wantErr    error
	}{
		{
			name:  "OK",
			input: input{account.HolderName, account.Balance},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Save(gomock.Any(), eqAccount(domain.Account{HolderName: account.HolderName, Balance: account.Balance})).
					Times(1).
					Return(account, nil)
			},
			want: account,
		},
		{
			name:  "ZeroBalance",
			input: input{account.HolderName, decimal.Zero},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Save(gomock.Any(), eqAccount(domain.Account{HolderName: account.HolderName})).
					Times(1).
					Return(domain.Account{ID: account.ID, HolderName: account.HolderName}, nil)
			},
			want: domain.Account{ID: account.ID, HolderName: account.HolderName},
		},
		{
			name:  "KeepsPaddedHolderName",
			input: input{"  " + account.HolderName + " ", account.Balance},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Save(gomock.Any(), eqAccount(domain.Account{HolderName: "  " + account.HolderName + " ", Balance: account.Balance})).
					Times(1).
					Return(domain.Account{ID: account.ID, HolderName: "  " + account.HolderName + " ", Balance: account.Balance}, nil)
			},
			want: domain.Account{ID: account.ID, HolderName: "  " + account.HolderName + " ", Balance: account.Balance},
		},
		{
			name:  "EmptyHolderName",
			input: input{"   ", account.Balance},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidHolderName,
		},
		{
			name:  "NegativeBalance",
			input: input{account.HolderName, decimal.NewFromInt(-1)},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:  "RepoError",
			input: input{account.HolderName, account.Balance},
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().
					Save(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			s := New(repo)

			got, err := s.Create(context.Background(), tc.input.holderName, tc.input.balance)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("s.Create(%q, %v) err=%v, want %v", tc.input.holderName, tc.input.balance, err, tc.wantErr)
			}

			if diff := cmp.Diff(tc.want, got, equateDecimal); diff != "" {
				t.Errorf("s.Create() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGet(t *testing.T) {
	account := randomAccount(100)

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		want       domain.Account
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
			},
			want: account,
		},
		{
			name: "ErrAccountNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).Get(context.Background(), account.ID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("s.Get(%v) err=%v, want %v", account.ID, err, tc.wantErr)
			}

			if diff := cmp.Diff(tc.want, got, equateDecimal); diff != "" {
				t.Errorf("s.Get() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeposit(t *testing.T) {
	account := randomAccount(100)
	deposited := account
	deposited.Balance = decimal.NewFromInt(150)

	testCases := []struct {
		name       string
		amount     decimal.Decimal
		buildStubs func(repo *MockRepo)
		want       domain.Account
		wantErr    error
	}{
		{
			name:   "OK",
			amount: decimal.NewFromInt(50),
			buildStubs: func(repo *MockRepo) {
				gomock.InOrder(
					repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil),
					repo.EXPECT().Save(gomock.Any(), eqAccount(deposited)).Times(1).Return(deposited, nil),
				)
			},
			want: deposited,
		},
		{
			name:   "ZeroAmount",
			amount: decimal.Zero,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "NegativeAmount",
			amount: decimal.NewFromInt(-10),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "ErrAccountNotFound",
			amount: decimal.NewFromInt(50),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name:   "SaveError",
			amount: decimal.NewFromInt(50),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).
					Times(1).
					Return(domain.Account{}, errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).Deposit(context.Background(), account.ID, tc.amount)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("s.Deposit(%v, %v) err=%v, want %v", account.ID, tc.amount, err, tc.wantErr)
			}

			if diff := cmp.Diff(tc.want, got, equateDecimal); diff != "" {
				t.Errorf("s.Deposit() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWithdraw(t *testing.T) {
	account := randomAccount(150)

	withdrawn := account
	withdrawn.Balance = decimal.NewFromInt(100)

	emptied := account
	emptied.Balance = decimal.Zero

	testCases := []struct {
		name       string
		amount     decimal.Decimal
		buildStubs func(repo *MockRepo)
		want       domain.Account
		wantErr    error
	}{
		{
			name:   "OK",
			amount: decimal.NewFromInt(50),
			buildStubs: func(repo *MockRepo) {
				gomock.InOrder(
					repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil),
					repo.EXPECT().Save(gomock.Any(), eqAccount(withdrawn)).Times(1).Return(withdrawn, nil),
				)
			},
			want: withdrawn,
		},
		{
			name:   "WholeBalance",
			amount: decimal.NewFromInt(150),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Save(gomock.Any(), eqAccount(emptied)).Times(1).Return(emptied, nil)
			},
			want: emptied,
		},
		{
			name:   "ErrInsufficientBalance",
			amount: decimal.NewFromInt(200),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInsufficientBalance,
		},
		{
			name:   "ZeroAmount",
			amount: decimal.Zero,
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name:   "ErrAccountNotFound",
			amount: decimal.NewFromInt(50),
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).Withdraw(context.Background(), account.ID, tc.amount)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("s.Withdraw(%v, %v) err=%v, want %v", account.ID, tc.amount, err, tc.wantErr)
			}

			if diff := cmp.Diff(tc.want, got, equateDecimal); diff != "" {
				t.Errorf("s.Withdraw() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList(t *testing.T) {
	accounts := []domain.Account{randomAccount(1), randomAccount(2)}

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		want       []domain.Account
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any()).Times(1).Return(accounts, nil)
			},
			want: accounts,
		},
		{
			name: "NilFromRepo",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any()).Times(1).Return(nil, nil)
			},
			want: []domain.Account{},
		},
		{
			name: "RepoError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().List(gomock.Any()).Times(1).Return(nil, errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).List(context.Background())
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("s.List() err=%v, want %v", err, tc.wantErr)
			}

			if tc.wantErr == nil && got == nil {
				t.Fatal("s.List() returned nil slice")
			}

			if diff := cmp.Diff(tc.want, got, equateDecimal); diff != "" {
				t.Errorf("s.List() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	account := randomAccount(0)

	testCases := []struct {
		name       string
		buildStubs func(repo *MockRepo)
		want       domain.Account
		wantErr    error
	}{
		{
			name: "OK",
			buildStubs: func(repo *MockRepo) {
				gomock.InOrder(
					repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil),
					repo.EXPECT().Delete(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(nil),
				)
			},
			want: account,
		},
		{
			name: "ErrAccountNotFound",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).
					Times(1).
					Return(domain.Account{}, domain.ErrAccountNotFound)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Times(0)
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "DeleteError",
			buildStubs: func(repo *MockRepo) {
				repo.EXPECT().Get(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(account, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Eq(account.ID)).Times(1).Return(errorspkg.ErrInternal)
			},
			wantErr: errorspkg.ErrInternal,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := NewMockRepo(ctrl)
			tc.buildStubs(repo)

			got, err := New(repo).Delete(context.Background(), account.ID)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("s.Delete(%v) err=%v, want %v", account.ID, err, tc.wantErr)
			}

			if diff := cmp.Diff(tc.want, got, equateDecimal); diff != "" {
				t.Errorf("s.Delete() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
