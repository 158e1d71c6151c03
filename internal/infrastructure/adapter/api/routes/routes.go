package routes

import (
	"net/http"

	"github.com/amirhossein-jamali/league-wallet/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/league-wallet/internal/domain/port/core"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/league-wallet/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIPrefix is the base path of the versioned API
const APIPrefix = "/api/v1"

// Handlers groups the HTTP handlers served under APIPrefix
type Handlers struct {
	Account *handler.AccountHandler
	Wallet  *handler.WalletHandler
	Match   *handler.MatchHandler
	Admin   *handler.AdminHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, handlers Handlers, tokens coreport.TokenService) {
	api := router.Group(APIPrefix)

	// Public
	api.POST("/auth/register", handlers.Account.Register)
	api.POST("/auth/login", handlers.Account.Login)
	api.GET("/rules", handlers.Match.Rules)
	api.GET("/advice", handlers.Match.Advice)

	// Room secrets depend on who is asking
	catalog := api.Group("/matches", middleware.OptionalAuth(tokens))
	{
		catalog.GET("", handlers.Match.List)
		catalog.GET("/:id", handlers.Match.Get)
	}

	player := api.Group("", middleware.Auth(tokens))
	{
		player.GET("/me", handlers.Account.Me)
		player.GET("/me/transactions", handlers.Wallet.Transactions)
		player.GET("/me/registrations", handlers.Match.MyRegistrations)
		player.POST("/wallet/deposit", handlers.Wallet.Deposit)
		player.POST("/wallet/withdraw", handlers.Wallet.Withdraw)
		player.POST("/matches/:id/join", handlers.Match.Join)
	}

	admin := api.Group("/admin", middleware.Auth(tokens), middleware.RequireRole(entity.RoleAdmin))
	{
		admin.GET("/overview", handlers.Admin.Overview)
		admin.GET("/transactions/pending", handlers.Admin.Pending)
		admin.POST("/transactions/:id/approve", handlers.Admin.Approve)
		admin.POST("/transactions/:id/reject", handlers.Admin.Reject)
		admin.GET("/accounts", handlers.Admin.Accounts)
		admin.PUT("/accounts/:mobile/balance", handlers.Admin.Balance)
		admin.POST("/matches", handlers.Admin.CreateMatch)
		admin.PATCH("/matches/:id", handlers.Admin.UpdateMatch)
		admin.GET("/matches/:id/registrations", handlers.Admin.MatchRegistrations)
		admin.POST("/feed/refresh", handlers.Admin.RefreshFeed)
	}
}

// SetupOperational adds the health probe and, when gatherer is set, the metrics endpoint
func SetupOperational(router *gin.Engine, gatherer prometheus.Gatherer, metricsPath string) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if gatherer != nil {
		router.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, observer middleware.HTTPObserver) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics(observer))
}

// WithCORS lets the browser client on origins call the API
func WithCORS(next http.Handler, origins []string) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	})(next)
}
