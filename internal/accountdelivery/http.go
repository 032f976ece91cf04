// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/account-engine/internal/domain"
	"github.com/go-petr/account-engine/pkg/errorspkg"
	"github.com/go-petr/account-engine/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, holderName string, balance decimal.Decimal) (domain.Account, error)
	Get(ctx context.Context, id int64) (domain.Account, error)
	Deposit(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
	Withdraw(ctx context.Context, id int64, amount decimal.Decimal) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Delete(ctx context.Context, id int64) (domain.Account, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) Handler {
	return Handler{service: as}
}

// Response messages.
const (
	MsgCreated   = "Account created successfully!"
	MsgRetrieved = "Account retrieved successfully!"
	MsgDeposited = "Amount deposited successfully!"
	MsgWithdrawn = "Amount withdrawn successfully!"
	MsgListed    = "All accounts retrieved successfully!"
	MsgDeleted   = "Account deleted successfully!"
)

// Root causes reported in error envelopes.
const (
	RootCauseAccountNotFound  = "Account with the requested ID is not available in the Database!"
	RootCauseAccountsNotFound = "No accounts are present in the database!"
	RootCauseBadRequest       = "The request was rejected by account rules."
	RootCauseValidation       = "The request failed validation."
	RootCauseInternal         = "An unexpected error occurred. Please try again."
)

// respondError maps err to its status code and writes the error envelope.
func respondError(gctx *gin.Context, err error) {
	_ = gctx.Error(err)

	var (
		status    int
		rootCause string
	)

	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		status, rootCause = http.StatusNotFound, RootCauseAccountNotFound
	case errors.Is(err, domain.ErrAccountsNotFound):
		status, rootCause = http.StatusNotFound, RootCauseAccountsNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrInvalidHolderName):
		status, rootCause = http.StatusBadRequest, RootCauseBadRequest
	default:
		zerolog.Ctx(gctx.Request.Context()).Error().Err(err).Send()
		status, rootCause, err = http.StatusInternalServerError, RootCauseInternal, errorspkg.ErrInternal
	}

	gctx.JSON(status, web.Error(status, err, rootCause))
}

// respondBindError writes 400 with the first validation failure when there is one.
func respondBindError(gctx *gin.Context, err error) {
	_ = gctx.Error(err)

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		field := ve[0]
		err = errors.New(field.Field() + web.GetErrorMsg(field))
	}

	gctx.JSON(http.StatusBadRequest, web.Error(http.StatusBadRequest, err, RootCauseValidation))
}

type createRequest struct {
	HolderName string          `json:"holderName" binding:"required,max=100"`
	Balance    decimal.Decimal `json:"balance"`
}

// Create handles http request to create account.
// A client supplied id is ignored, the store assigns one.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		respondBindError(gctx, err)
		return
	}

	account, err := h.service.Create(ctx, req.HolderName, req.Balance)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusCreated, web.Success(http.StatusCreated, MsgCreated, account))
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		respondBindError(gctx, err)
		return
	}

	account, err := h.service.Get(ctx, req.ID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success(http.StatusOK, MsgRetrieved, account))
}

type amountRequest struct {
	Amount *decimal.Decimal `json:"amount" binding:"required,amount"`
}

// bindAmount binds the path id and the amount body.
// Any problem with the body is reported as domain.ErrInvalidAmount.
func bindAmount(gctx *gin.Context) (int64, decimal.Decimal, bool) {
	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		respondBindError(gctx, err)
		return 0, decimal.Decimal{}, false
	}

	var req amountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		_ = gctx.Error(err)
		respondError(gctx, domain.ErrInvalidAmount)

		return 0, decimal.Decimal{}, false
	}

	return uri.ID, *req.Amount, true
}

// Deposit handles http request to deposit money to account.
func (h *Handler) Deposit(gctx *gin.Context) {
	id, amount, ok := bindAmount(gctx)
	if !ok {
		return
	}

	account, err := h.service.Deposit(gctx.Request.Context(), id, amount)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success(http.StatusOK, MsgDeposited, account))
}

// Withdraw handles http request to withdraw money from account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	id, amount, ok := bindAmount(gctx)
	if !ok {
		return
	}

	account, err := h.service.Withdraw(gctx.Request.Context(), id, amount)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success(http.StatusOK, MsgWithdrawn, account))
}

// List handles http request to list all accounts.
func (h *Handler) List(gctx *gin.Context) {
	accounts, err := h.service.List(gctx.Request.Context())
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success(http.StatusOK, MsgListed, accounts))
}

// Delete handles http request to delete account.
// The response carries the account as it was before deletion.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		respondBindError(gctx, err)
		return
	}

	account, err := h.service.Delete(ctx, req.ID)
	if err != nil {
		respondError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Success(http.StatusOK, MsgDeleted, account))
}

// RegisterRoutes mounts account routes on r.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	accounts := r.Group("/accounts")

	accounts.POST("", h.Create)
	accounts.GET("", h.List)
	accounts.GET("/:id", h.Get)
	accounts.PUT("/:id/deposit", h.Deposit)
	accounts.PUT("/:id/withdraw", h.Withdraw)
	accounts.DELETE("/:id", h.Delete)
}
