package routes

import (
	coreport "github.com/propstake/token-ledger/internal/domain/port/core"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/propstake/token-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	logger coreport.Logger,
	paymentMethodHandler *handler.PaymentMethodHandler,
	accountHandler *handler.AccountHandler,
	purchaseHandler *handler.PurchaseHandler,
	adminHandler *handler.AdminHandler,
) {
	authenticated := router.Group("/")
	authenticated.Use(middleware.Auth(jwtSecret, logger))
	{
		// GET /payment-methods
		authenticated.GET("/payment-methods", paymentMethodHandler.ListPaymentMethods)

		tokenRoutes := authenticated.Group("/tokens")
		{
			// GET /tokens/account
			tokenRoutes.GET("/account", accountHandler.GetAccount)

			// GET /tokens/transactions
			tokenRoutes.GET("/transactions", accountHandler.ListTransactions)

			// POST /tokens/purchase
			tokenRoutes.POST("/purchase", purchaseHandler.Purchase)

			// POST /tokens/spend
			tokenRoutes.POST("/spend", purchaseHandler.Spend)
		}

		adminRoutes := authenticated.Group("/admin")
		adminRoutes.Use(middleware.RequireAdmin())
		{
			// PUT /admin/transactions/:id/status
			adminRoutes.PUT("/transactions/:id/status", adminHandler.ResolveTransaction)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
