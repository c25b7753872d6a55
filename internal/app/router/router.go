package router

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "storefront_backend/internal/feature/auth/transport/handler"
	carthandler "storefront_backend/internal/feature/cart/transport/handler"
	cataloghandler "storefront_backend/internal/feature/catalog/transport/handler"
	orderhandler "storefront_backend/internal/feature/orders/transport/handler"
	platformhandler "storefront_backend/internal/platform/http/handler"
	"storefront_backend/internal/platform/metrics"
	"storefront_backend/internal/platform/session"
)

func NewRouter(
	sessions session.Store,
	authHandler *authhandler.AuthHandler,
	products *cataloghandler.ProductHandler,
	carts *carthandler.CartHandler,
	orders *orderhandler.OrderHandler,
) *gin.Engine {
	r := gin.Default()
	r.Use(metrics.Middleware())
	r.Use(cors.New(corsConfig()))

	// service endpoints
	r.GET("/healthz", platformhandler.Health)
	r.HEAD("/healthz", platformhandler.Health)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")

	// public catalog
	api.GET("/getProducts", products.List)
	api.GET("/getProduct/:id", products.Get)

	// auth lifecycle; Status works with or without a session
	auth := api.Group("/auth")
	auth.GET("/status", authHandler.Status)
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/password-reset", authHandler.PasswordReset)
	auth.POST("/new-password", authHandler.NewPassword)

	// session required
	authed := api.Group("/")
	authed.Use(session.AuthRequired(sessions))
	{
		authed.GET("/getCart", carts.GetCart)
		authed.POST("/addToCart", carts.AddToCart)
		authed.DELETE("/removeFromCart/:id", carts.RemoveFromCart)
		authed.DELETE("/clearCart", carts.ClearCart)

		authed.POST("/placeOrder", orders.PlaceOrder)
		authed.GET("/getOrders", orders.GetOrders)
		authed.GET("/getOrder/:id", orders.GetOrder)
		authed.GET("/getInvoice/:id", orders.GetInvoice)
	}

	// product management, scoped to the products the caller owns
	admin := api.Group("/admin")
	admin.Use(session.AuthRequired(sessions))
	{
		admin.GET("/getProducts", products.ListOwn)
		admin.POST("/addProduct", products.AddProduct)
		admin.PATCH("/editProduct", products.EditProduct)
		admin.DELETE("/deleteProduct/:id", products.DeleteProduct)
	}

	return r
}

// corsConfig allows the storefront frontend origin with cookies enabled.
func corsConfig() cors.Config {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}

	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = strings.Split(origins, ",")
	cfg.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	cfg.AllowCredentials = true
	cfg.MaxAge = 12 * time.Hour
	return cfg
}
