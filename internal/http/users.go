package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookshare/bookshare/internal/auth"
	"github.com/bookshare/bookshare/internal/validation"
)

type UsersController struct {
	service *auth.Service
}

func NewUsersController(service *auth.Service) *UsersController {
	return &UsersController{service: service}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new account. It never issues tokens; clients go
// through /api/token/ afterwards.
// POST /api/register/
func (uc *UsersController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	_, err := uc.service.Register(req.Username, req.Email, req.Password)
	if err != nil {
		var fieldErr *validation.FieldError
		if errors.As(err, &fieldErr) {
			respondValidationError(c, fieldErr)
			return
		}
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"email": "This email is already in use."})
			return
		}
		respondInternalError(c, err, "register user")
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{Message: "User registered successfully"})
}

// CurrentUser returns the authenticated user's username and email.
// GET /api/current_user/
func (uc *UsersController) CurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username": auth.GetUsername(c),
		"email":    auth.GetEmail(c),
	})
}
