package accountservice

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-petr/account-engine/internal/domain"
)

const (
	opDeposit  = "deposit"
	opWithdraw = "withdraw"
)

// BalanceOperations counts deposit and withdraw attempts by outcome.
var BalanceOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "account_balance_operations_total",
	Help: "Total number of balance operations by kind and outcome.",
}, []string{"op", "outcome"})

func observe(op string, err error) {
	BalanceOperations.WithLabelValues(op, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, domain.ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "not_found"
	default:
		return "error"
	}
}
