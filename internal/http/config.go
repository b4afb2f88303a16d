package http

import (
	"github.com/bookshare/bookshare/internal/auth"
	"github.com/bookshare/bookshare/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Database        *database.Database
	BooksStore      BooksStore
	FavouritesStore FavouritesStore

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	RateLimiter    *auth.RateLimiter

	// Application info
	Version string
}
