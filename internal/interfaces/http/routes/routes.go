// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/your-org/ecart-storefront/internal/domain/catalog"
	"github.com/your-org/ecart-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/ecart-storefront/internal/interfaces/http/middleware"
)

// SetupAuthRoutes sets up signup, login and session routes
func SetupAuthRoutes(rg *gin.RouterGroup) {
	authHandler := handlers.NewAuthHandler()

	auth := rg.Group("/auth")
	{
		auth.POST("/signup", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
	}

	session := rg.Group("/session")
	{
		session.GET("", authHandler.GetSession)
		session.GET("/counts", authHandler.GetCounts)
	}
}

// SetupProfileRoutes sets up the signed-in user's account routes
func SetupProfileRoutes(rg *gin.RouterGroup) {
	profileHandler := handlers.NewProfileHandler()

	profile := rg.Group("/profile")
	profile.Use(middleware.RequireLogin())
	{
		profile.GET("", profileHandler.GetProfile)
		profile.PUT("", profileHandler.UpdateProfile)
		profile.DELETE("", profileHandler.DeleteAccount)
	}
}

// SetupCatalogRoutes sets up category, search and featured product routes
func SetupCatalogRoutes(rg *gin.RouterGroup, catalogService *catalog.Service) {
	catalogHandler := handlers.NewCatalogHandler(catalogService)

	categories := rg.Group("/categories")
	{
		categories.GET("", catalogHandler.GetCategories)
		categories.GET("/:slug/products", catalogHandler.GetCategoryProducts)
		categories.GET("/:slug/products/:id", catalogHandler.GetProduct)
	}

	rg.GET("/search", catalogHandler.Search)
	rg.GET("/featured", catalogHandler.GetFeatured)
}

// SetupCartRoutes sets up cart routes. Anonymous requests are answered by
// the shopper with a login prompt.
func SetupCartRoutes(rg *gin.RouterGroup, catalogService *catalog.Service) {
	cartHandler := handlers.NewCartHandler(catalogService)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateQuantity)
		cart.POST("/items/:id/increment", cartHandler.IncrementQuantity)
		cart.POST("/items/:id/decrement", cartHandler.DecrementQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, catalogService *catalog.Service) {
	wishlistHandler := handlers.NewWishlistHandler(catalogService)

	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/toggle", wishlistHandler.ToggleWishlist)
		wishlist.DELETE("/:id", wishlistHandler.RemoveFromWishlist)
		wishlist.POST("/:id/move-to-cart", wishlistHandler.MoveToCart)
	}
}

// SetupCheckoutRoutes sets up checkout and order history routes
func SetupCheckoutRoutes(rg *gin.RouterGroup) {
	checkoutHandler := handlers.NewCheckoutHandler()

	checkout := rg.Group("/checkout")
	{
		checkout.GET("", checkoutHandler.GetCheckout)
		checkout.POST("", checkoutHandler.PlaceOrder)
	}

	rg.GET("/orders", checkoutHandler.GetOrders)
}

// SetupRoutes sets up every storefront route on rg
func SetupRoutes(rg *gin.RouterGroup, catalogService *catalog.Service) {
	SetupAuthRoutes(rg)
	SetupProfileRoutes(rg)
	SetupCatalogRoutes(rg, catalogService)
	SetupCartRoutes(rg, catalogService)
	SetupWishlistRoutes(rg, catalogService)
	SetupCheckoutRoutes(rg)
}
