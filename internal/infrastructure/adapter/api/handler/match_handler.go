package handler

import (
	"net/http"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// MatchHandler handles the match catalog, joins and play tips
type MatchHandler struct {
	matchUseCase        usecase.MatchUseCase
	registrationUseCase usecase.RegistrationUseCase
	adviceUseCase       usecase.AdviceUseCase
	logger              coreport.Logger
}

// NewMatchHandler creates a new match handler instance
func NewMatchHandler(
	matchUseCase usecase.MatchUseCase,
	registrationUseCase usecase.RegistrationUseCase,
	adviceUseCase usecase.AdviceUseCase,
	logger coreport.Logger,
) *MatchHandler {
	return &MatchHandler{
		matchUseCase:        matchUseCase,
		registrationUseCase: registrationUseCase,
		adviceUseCase:       adviceUseCase,
		logger:              logger,
	}
}

// List handles GET /matches
func (h *MatchHandler) List(c *gin.Context) {
	views, err := h.matchUseCase.List(c.Request.Context(), middleware.Viewer(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMatchList(views))
}

// Get handles GET /matches/:id
func (h *MatchHandler) Get(c *gin.Context) {
	view, err := h.matchUseCase.Get(c.Request.Context(), middleware.Viewer(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMatchResponse(*view))
}

// Join handles POST /matches/:id/join
func (h *MatchHandler) Join(c *gin.Context) {
	var req dto.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	registration, err := h.registrationUseCase.Join(c.Request.Context(), usecase.JoinInput{
		AccountKey: middleware.AccountKey(c),
		MatchID:    c.Param("id"),
		GameUID:    req.GameUID,
		GameName:   req.GameName,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewRegistrationResponse(registration))
}

// MyRegistrations handles GET /me/registrations
func (h *MatchHandler) MyRegistrations(c *gin.Context) {
	registrations, err := h.registrationUseCase.ListForAccount(c.Request.Context(), middleware.AccountKey(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRegistrationList(registrations))
}

// Rules handles GET /rules
func (h *MatchHandler) Rules(c *gin.Context) {
	c.JSON(http.StatusOK, dto.RulesResponse{Rules: entity.Rules()})
}

// Advice handles GET /advice?category=&format=
func (h *MatchHandler) Advice(c *gin.Context) {
	category := c.DefaultQuery("category", string(entity.CategoryBattleRoyale))
	format := c.DefaultQuery("format", string(entity.FormatSolo))

	c.JSON(http.StatusOK, dto.AdviceResponse{
		Advice: h.adviceUseCase.GetAdvice(c.Request.Context(), category, format),
	})
}
