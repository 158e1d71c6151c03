package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles the moderation console
type AdminHandler struct {
	moderationUseCase   usecase.ModerationUseCase
	accountUseCase      usecase.AccountUseCase
	registrationUseCase usecase.RegistrationUseCase
	matchUseCase        usecase.MatchUseCase
	logger              coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	moderationUseCase usecase.ModerationUseCase,
	accountUseCase usecase.AccountUseCase,
	registrationUseCase usecase.RegistrationUseCase,
	matchUseCase usecase.MatchUseCase,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		moderationUseCase:   moderationUseCase,
		accountUseCase:      accountUseCase,
		registrationUseCase: registrationUseCase,
		matchUseCase:        matchUseCase,
		logger:              logger,
	}
}

// Overview handles GET /admin/overview
func (h *AdminHandler) Overview(c *gin.Context) {
	overview, err := h.moderationUseCase.Overview(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewOverviewResponse(overview))
}

// Pending handles GET /admin/transactions/pending?type=
func (h *AdminHandler) Pending(c *gin.Context) {
	txs, err := h.moderationUseCase.ListPending(c.Request.Context(), usecase.PendingFilter(c.Query("type")))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionList(txs))
}

// Approve handles POST /admin/transactions/:id/approve
func (h *AdminHandler) Approve(c *gin.Context) {
	h.moderate(c, h.moderationUseCase.Approve)
}

// Reject handles POST /admin/transactions/:id/reject
func (h *AdminHandler) Reject(c *gin.Context) {
	h.moderate(c, h.moderationUseCase.Reject)
}

func (h *AdminHandler) moderate(c *gin.Context, decide func(ctx context.Context, transactionID string) (*usecase.ModerationResult, error)) {
	result, err := decide(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewModerationResponse(result))
}

// Accounts handles GET /admin/accounts?q=
func (h *AdminHandler) Accounts(c *gin.Context) {
	accounts, err := h.accountUseCase.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountList(accounts))
}

// Balance handles PUT /admin/accounts/:mobile/balance. The body carries either
// an absolute "balance" or a signed "delta".
func (h *AdminHandler) Balance(c *gin.Context) {
	var req dto.BalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	hasBalance := strings.TrimSpace(req.Balance) != ""
	hasDelta := strings.TrimSpace(req.Delta) != ""
	if hasBalance == hasDelta {
		writeError(c, h.logger, errs.NewValidationError("balance", "", "send exactly one of balance or delta", errs.ErrInvalidRequest))
		return
	}

	ctx := c.Request.Context()
	actor := middleware.AccountKey(c)
	mobile := c.Param("mobile")

	var (
		change *usecase.BalanceChange
		err    error
	)
	if hasBalance {
		var balance int64
		if balance, err = entity.ParseAmount(req.Balance); err == nil {
			change, err = h.moderationUseCase.SetBalance(ctx, actor, mobile, balance)
		}
	} else {
		var delta int64
		if delta, err = entity.ParseSignedAmount(req.Delta); err == nil {
			change, err = h.moderationUseCase.AdjustBalance(ctx, actor, mobile, delta)
		}
	}
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBalanceChangeResponse(change))
}

// CreateMatch handles POST /admin/matches
func (h *AdminHandler) CreateMatch(c *gin.Context) {
	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	match, err := h.moderationUseCase.CreateMatch(c.Request.Context(), req.ToInput())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewMatchResponse(usecase.MatchView{Match: match}))
}

// UpdateMatch handles PATCH /admin/matches/:id
func (h *AdminHandler) UpdateMatch(c *gin.Context) {
	var req dto.MatchPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	match, err := h.moderationUseCase.UpdateMatch(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMatchResponse(usecase.MatchView{Match: match}))
}

// MatchRegistrations handles GET /admin/matches/:id/registrations
func (h *AdminHandler) MatchRegistrations(c *gin.Context) {
	registrations, err := h.registrationUseCase.ListForMatch(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRegistrationList(registrations))
}

// RefreshFeed handles POST /admin/feed/refresh
func (h *AdminHandler) RefreshFeed(c *gin.Context) {
	result, err := h.matchUseCase.Refresh(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	h.logger.Info("Match feed refreshed by admin", map[string]any{
		"admin":   middleware.AccountKey(c),
		"kept":    result.Kept,
		"added":   result.Added,
		"dropped": result.Dropped,
	})
	c.JSON(http.StatusOK, dto.RefreshResponse{Kept: result.Kept, Added: result.Added, Dropped: result.Dropped})
}
