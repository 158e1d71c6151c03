package handler

import (
	"errors"
	"net/http"

	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/validation"
	"github.com/gin-gonic/gin"
)

// ActionTopUp tells the client to send the player to the deposit flow
const ActionTopUp = "top_up"

// StatusFor maps a domain error to its HTTP status
func StatusFor(err error) int {
	switch errs.KindOf(err) {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindBusinessRule, errs.KindStaleState:
		return http.StatusConflict
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindAuth:
		if errors.Is(err, errs.ErrForbidden) {
			return http.StatusForbidden
		}
		return http.StatusUnauthorized
	case errs.KindExternal:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends the error response for a failed use case call.
// Internal details never reach the client.
func writeError(c *gin.Context, logger coreport.Logger, err error) {
	status := StatusFor(err)
	resp := dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: clientMessage(err),
	}
	if errors.Is(err, errs.ErrInsufficientBalance) {
		resp.Action = ActionTopUp
	}

	if status >= http.StatusInternalServerError {
		fields := errs.LogFields(err)
		fields["path"] = c.FullPath()
		fields["request_id"] = c.GetHeader("X-Request-ID")
		logger.Error("Request failed", fields)
	}
	_ = c.Error(err)
	c.JSON(status, resp)
}

// writeBindError sends 400 for a body that does not bind
func writeBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    errs.ErrorCode(errs.ErrInvalidRequest),
		Message: "Invalid request body",
		Fields:  validation.FieldErrors(err),
	})
}

func clientMessage(err error) string {
	switch errs.KindOf(err) {
	case errs.KindInternal:
		return "Internal server error"
	case errs.KindExternal:
		return "Service temporarily unavailable"
	}

	// The player already knows which match they tried to join
	var regErr *errs.RegistrationError
	if errors.As(err, &regErr) {
		return regErr.Err.Error()
	}
	return err.Error()
}
