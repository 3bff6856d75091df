package routes

import (
	"time"

	"yourbuyer-api/handlers"
	"yourbuyer-api/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, shippingHandler *handlers.ShippingHandler) {
	// Initialize handlers
	authHandler := &handlers.AuthHandler{DB: db}
	productHandler := &handlers.ProductHandler{DB: db}
	productImageHandler := &handlers.ProductImageHandler{DB: db}
	categoryHandler := &handlers.CategoryHandler{DB: db}
	cartHandler := &handlers.CartHandler{DB: db}
	wishlistHandler := &handlers.WishlistHandler{DB: db}
	orderHandler := &handlers.OrderHandler{DB: db}

	authLimiter := middleware.NewRateLimiter(10, 1*time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.POST("/register", authLimiter.Middleware(), authHandler.Register)
		api.POST("/login", authLimiter.Middleware(), authHandler.Login)

		api.GET("/products", productHandler.List)
		api.GET("/products/:slug", productHandler.GetBySlug)

		api.GET("/categories", categoryHandler.List)

		// Cart routes resolve their own identity (bearer token or
		// X-Anonymous-Token), so they stay public.
		api.GET("/cart", cartHandler.Get)
		api.POST("/cart/add", cartHandler.Add)
		api.PUT("/cart/:id", cartHandler.Update)
		// DELETE /cart/clear is dispatched inside Remove; gin rejects a
		// static sibling of the :id parameter.
		api.DELETE("/cart/:id", cartHandler.Remove)

		api.POST("/orders", orderHandler.Create)

		api.GET("/nova-poshta/cities", shippingHandler.Cities)
		api.POST("/nova-poshta/departments", shippingHandler.Departments)
		api.GET("/nova-poshta/search-city", shippingHandler.SearchCity)
	}

	// Protected routes (require authentication)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(db))
	{
		protected.GET("/user", authHandler.User)
		protected.POST("/logout", authHandler.Logout)

		protected.POST("/cart/merge", cartHandler.Merge)

		protected.GET("/wishlist", wishlistHandler.Get)
		protected.POST("/wishlist/add", wishlistHandler.Add)
		protected.DELETE("/wishlist/:id", wishlistHandler.Remove)
	}

	// Admin routes. There is no role column; any authenticated user may
	// manage the catalog, matching the storefront's admin panel.
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(db))
	{
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)

		admin.POST("/products/:id/images", productImageHandler.Upload)
		admin.PUT("/products/:id/images/:imageId/primary", productImageHandler.SetPrimary)
		admin.DELETE("/products/:id/images/:imageId", productImageHandler.Delete)

		admin.POST("/categories", categoryHandler.Create)
		admin.PUT("/categories/:id", categoryHandler.Update)
		admin.DELETE("/categories/:id", categoryHandler.Delete)

		admin.GET("/users", authHandler.ListUsers)
		admin.GET("/orders", orderHandler.List)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
