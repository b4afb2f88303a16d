// Package auth provides authentication and authorization for the application.
//
// Authentication is stateless: clients obtain an access/refresh token
// pair from /api/token/ and send the access token as a Bearer header on
// every request. Refresh tokens can be blacklisted at logout.
//
// # Configuration
//
//	AUTH_JWT_SECRET=<secret>            # Required, HS256 signing key
//	AUTH_ACCESS_TOKEN_LIFETIME=30m      # Access token lifetime
//	AUTH_REFRESH_TOKEN_LIFETIME=24h     # Refresh token lifetime
//	AUTH_BCRYPT_COST=12                 # bcrypt cost factor
//	AUTH_MAX_LOGIN_ATTEMPTS=5           # Failures before lockout
//	AUTH_RATE_LIMIT_WINDOW=15m          # Window for counting failures
//	AUTH_LOCKOUT_DURATION=30m           # Lockout length
//
// # Usage
//
// Initialize authentication in entrypoint:
//
//	authService := auth.NewService(db.DB, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService)
//	protected.Use(authMiddleware.Handler())
//
// Extract user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
