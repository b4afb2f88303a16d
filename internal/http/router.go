package http

import (
	"github.com/gin-gonic/gin"

	"github.com/bookshare/bookshare/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	healthController := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", healthController.Status)

	usersController := NewUsersController(cfg.AuthService)
	tokensController := NewTokensController(cfg.AuthService, cfg.RateLimiter)
	booksController := NewBooksController(cfg.BooksStore)
	favouritesController := NewFavouritesController(cfg.FavouritesStore)

	api := router.Group("/api")

	// Public endpoints: registration and token exchange
	api.POST("/register/", usersController.Register)
	api.POST("/token/", tokensController.Obtain)
	api.POST("/token/refresh/", tokensController.Refresh)

	// Everything else requires a valid access token
	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.Handler())

	protected.GET("/current_user/", usersController.CurrentUser)
	protected.POST("/logout/", tokensController.Logout)

	protected.GET("/books/", booksController.List)
	protected.POST("/books/", booksController.Create)
	protected.GET("/books/by_title/", booksController.SearchByTitle)
	protected.GET("/books/:id/", booksController.Retrieve)
	protected.PUT("/books/:id/", booksController.Update)
	protected.PATCH("/books/:id/", booksController.Update)
	protected.DELETE("/books/:id/", booksController.Delete)

	protected.GET("/favourites/", favouritesController.List)
	protected.POST("/favourites/", favouritesController.Create)
	protected.GET("/favourites/:id/", favouritesController.Retrieve)
	protected.DELETE("/favourites/:id/", favouritesController.Delete)

	return router
}
