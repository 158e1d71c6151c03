package middleware

import (
	"net/http"
	"strings"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	errs "github.com/amirhossein-jamali/league-wallet/internal/domain/error"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Context keys set by Auth
const (
	ContextAccountKey = "account_key"
	ContextRole       = "role"
)

// Auth requires a valid bearer token and stores its claims in the context
func Auth(tokens coreport.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verify(c, tokens)
		if err != nil || claims == nil {
			abort(c, http.StatusUnauthorized, errs.ErrUnauthorized)
			return
		}
		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth stores the claims of a valid bearer token when one is sent.
// Anonymous requests pass through; a bad token is rejected.
func OptionalAuth(tokens coreport.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verify(c, tokens)
		if err != nil {
			abort(c, http.StatusUnauthorized, errs.ErrUnauthorized)
			return
		}
		if claims != nil {
			setClaims(c, claims)
		}
		c.Next()
	}
}

// RequireRole allows only the given roles; it must run after Auth
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := entity.Role(c.GetString(ContextRole))
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		abort(c, http.StatusForbidden, errs.ErrForbidden)
	}
}

// AccountKey returns the authenticated account, or "" for anonymous requests
func AccountKey(c *gin.Context) string {
	return c.GetString(ContextAccountKey)
}

// Viewer describes who is calling, for role-dependent views
func Viewer(c *gin.Context) usecase.Viewer {
	return usecase.Viewer{
		AccountKey: AccountKey(c),
		Admin:      entity.Role(c.GetString(ContextRole)) == entity.RoleAdmin,
	}
}

// verify returns nil claims and no error when no token was sent
func verify(c *gin.Context, tokens coreport.TokenService) (*coreport.TokenClaims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, nil
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return nil, errs.ErrUnauthorized
	}
	return tokens.Verify(strings.TrimSpace(token))
}

func setClaims(c *gin.Context, claims *coreport.TokenClaims) {
	c.Set(ContextAccountKey, claims.Subject)
	c.Set(ContextRole, claims.Role)
}

func abort(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: err.Error(),
	})
}
