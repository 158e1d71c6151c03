package handler

import (
	"net/http"

	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// WalletHandler handles deposit and withdraw requests of the caller
type WalletHandler struct {
	walletUseCase usecase.WalletUseCase
	logger        coreport.Logger
}

// NewWalletHandler creates a new wallet handler instance
func NewWalletHandler(walletUseCase usecase.WalletUseCase, logger coreport.Logger) *WalletHandler {
	return &WalletHandler{
		walletUseCase: walletUseCase,
		logger:        logger,
	}
}

// Deposit handles POST /wallet/deposit
func (h *WalletHandler) Deposit(c *gin.Context) {
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	tx, err := h.walletUseCase.RequestDeposit(c.Request.Context(), usecase.DepositInput{
		AccountKey:  middleware.AccountKey(c),
		Amount:      req.Amount,
		Method:      req.Method,
		ExternalRef: req.ExternalRef,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(tx))
}

// Withdraw handles POST /wallet/withdraw
func (h *WalletHandler) Withdraw(c *gin.Context) {
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	tx, err := h.walletUseCase.RequestWithdraw(c.Request.Context(), usecase.WithdrawInput{
		AccountKey:   middleware.AccountKey(c),
		Amount:       req.Amount,
		Method:       req.Method,
		PayoutTarget: req.PayoutTarget,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewTransactionResponse(tx))
}

// Transactions handles GET /me/transactions
func (h *WalletHandler) Transactions(c *gin.Context) {
	txs, err := h.walletUseCase.ListTransactions(c.Request.Context(), middleware.AccountKey(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionList(txs))
}
