package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/handlers/invoice"
	pa "velora_back_end/internal/handlers/payement"
	"velora_back_end/internal/handlers/product"
	"velora_back_end/internal/handlers/user"
	"velora_back_end/internal/middleware"
)

// RegisterRoutes branche tous les endpoints de l'API
func RegisterRoutes(r *gin.Engine) {
	allowedOrigins := []string{"http://localhost:3000"}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		allowedOrigins = strings.Split(origins, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Catalogue accessible sans authentification
	api.GET("/products", product.GetProducts)
	api.GET("/products/search", product.SearchProducts)
	api.GET("/products/:id", product.GetProduct)
	api.GET("/products/:id/reviews", product.GetProductReviews)

	// Authentification
	auth := api.Group("/auth")
	auth.POST("/signup", user.Signup)
	auth.POST("/login", user.Login)
	auth.POST("/reset", user.RequestPasswordReset)
	auth.POST("/new-password", user.SetNewPassword)

	// Routes protégées par JWT
	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	{
		protected.POST("/products/:id/reviews", product.CreateReview)

		protected.GET("/cart", user.GetCart)
		protected.POST("/cart/add", user.AddToCart)
		protected.DELETE("/cart/clear", user.ClearCart)
		protected.DELETE("/cart/:productId", user.RemoveFromCart)
		protected.GET("/cart/ws", user.CartWebSocket)

		protected.POST("/orders", user.PlaceOrder)
		protected.GET("/orders", user.GetMyOrders)
		protected.GET("/orders/:id", user.GetOrderByID)
		protected.GET("/orders/:id/invoice", invoice.DownloadInvoice)

		protected.POST("/checkout", pa.CreateCheckoutSession)
		protected.GET("/checkout/success", pa.CheckoutSuccess)
	}

	// Routes réservées aux administrateurs
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.RequireAdmin())
	{
		admin.GET("/products", product.GetMyProducts)
		admin.POST("/products", product.CreateProduct)
		admin.PUT("/products/:id", product.UpdateProduct)
		admin.DELETE("/products/:id", product.DeleteProduct)
	}
}
