package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookshare/bookshare/internal/auth"
)

type TokensController struct {
	service *auth.Service
	limiter *auth.RateLimiter
}

func NewTokensController(service *auth.Service, limiter *auth.RateLimiter) *TokensController {
	return &TokensController{service: service, limiter: limiter}
}

type tokenRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Obtain exchanges credentials for an access/refresh token pair.
// Repeated failures for the same IP+username lock the combination out.
// POST /api/token/
func (tc *TokensController) Obtain(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	clientIP := c.ClientIP()
	if tc.limiter != nil {
		if allowed, retryAfter := tc.limiter.Allow(clientIP, req.Username); !allowed {
			c.Header("Retry-After", retryAfter.String())
			c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "Too many login attempts. Please try again later."})
			return
		}
	}

	user, err := tc.service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if tc.limiter != nil {
				tc.limiter.RecordFailure(clientIP, req.Username)
			}
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "No active account found with the given credentials"})
			return
		}
		respondInternalError(c, err, "authenticate")
		return
	}

	if tc.limiter != nil {
		tc.limiter.RecordSuccess(clientIP, req.Username)
	}

	pair, err := tc.service.IssueTokens(user)
	if err != nil {
		respondInternalError(c, err, "issue tokens")
		return
	}
	c.JSON(http.StatusOK, pair)
}

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

// Refresh exchanges a refresh token for a new access token.
// POST /api/token/refresh/
func (tc *TokensController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	access, err := tc.service.Refresh(req.Refresh)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Token is invalid or expired"})
			return
		}
		respondInternalError(c, err, "refresh token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout blacklists the refresh token. Every token failure, including
// a second logout with the same token, is a uniform 400; only database
// failures surface as 500. Success is 205 so clients reset their state.
// POST /api/logout/
func (tc *TokensController) Logout(c *gin.Context) {
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid token.")
		return
	}

	if err := tc.service.Logout(req.RefreshToken); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			respondBadRequest(c, "Invalid token.")
			return
		}
		respondInternalError(c, err, "revoke token")
		return
	}
	c.JSON(http.StatusResetContent, SuccessResponse{Message: "Logout successful."})
}
