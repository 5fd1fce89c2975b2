package router

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/polkiloo/sanda/internal/server/http/handlers"
	"github.com/polkiloo/sanda/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.Facade, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger.Named("http")))
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	orderHandler := handlers.NewOrderHandler(facade)
	volunteerHandler := handlers.NewVolunteerHandler(facade)
	volunteerBalance := handlers.NewBalanceHandler(facade.VolunteerLedger())
	walletHandler := handlers.NewWalletHandler(facade.WalletLedger())

	engine.GET("/healthz", handlers.Health(facade))

	api := engine.Group("/api")

	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/status", orderHandler.AdvanceStatus)
	orders.POST("/:id/cancel", orderHandler.Cancel)
	orders.DELETE("/:id/done", orderHandler.DeleteDone)

	users := api.Group("/users/:id/orders")
	users.GET("", orderHandler.UserOrders)
	users.GET("/count", orderHandler.UserOrderCount)
	users.POST("/cleanup", orderHandler.Cleanup)

	volunteers := api.Group("/volunteers")
	volunteers.POST("", volunteerHandler.Register)
	volunteers.GET("", volunteerHandler.List)
	volunteers.GET("/:id", volunteerHandler.Get)
	volunteers.PUT("/:id", volunteerHandler.Update)
	volunteers.DELETE("/:id", volunteerHandler.Delete)
	volunteers.GET("/:id/available-orders", volunteerHandler.Available)
	volunteers.POST("/:id/accept-order/:orderId", volunteerHandler.Accept)
	volunteers.POST("/:id/cancel-order/:orderId", volunteerHandler.Cancel)
	volunteers.GET("/:id/accepted-orders", volunteerHandler.Accepted)
	volunteers.GET("/:id/balance", volunteerBalance.Balance)
	volunteers.POST("/:id/deposit", volunteerBalance.Deposit)
	volunteers.POST("/:id/withdraw", volunteerBalance.Withdraw)
	volunteers.POST("/:id/can-withdraw", volunteerBalance.CanWithdraw)

	wallets := api.Group("/wallets/:id")
	wallets.POST("", walletHandler.Open)
	wallets.GET("", walletHandler.Balance)
	wallets.GET("/balance", walletHandler.Balance)
	wallets.POST("/deposit", walletHandler.Deposit)
	wallets.POST("/withdraw", walletHandler.Withdraw)
	wallets.POST("/can-withdraw", walletHandler.CanWithdraw)

	return engine
}
