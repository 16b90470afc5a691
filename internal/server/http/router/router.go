package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/dukahub/storefront/internal/server/http/handlers"
	"github.com/dukahub/storefront/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.StorefrontFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	checkoutHandler := handlers.NewCheckoutHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade, logger)

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	// processor webhook and client-side status checks stay unauthenticated
	api.POST("/payments/ipn", paymentHandler.IPN)
	api.GET("/orders/:trackingID/status", paymentHandler.Status)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))
	authed.POST("/checkout", checkoutHandler.Checkout)
	authed.GET("/user/orders", orderHandler.List)
	authed.GET("/user/orders/:orderID", orderHandler.Get)
	authed.PATCH("/admin/orders/:orderID/fulfillment", orderHandler.Fulfillment)

	return engine
}
