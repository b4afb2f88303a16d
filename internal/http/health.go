package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookshare/bookshare/internal/database"
	"github.com/bookshare/bookshare/internal/entities"
)

type HealthResponse struct {
	Status   string            `json:"status"`
	Time     string            `json:"time"`
	Version  string            `json:"version,omitempty"`
	Checks   map[string]string `json:"checks"`
	Catalog  int64             `json:"catalog_size"`
	Accounts int64             `json:"registered_users"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status reports database reachability plus basic catalog counts.
// The counts double as a migration check: a missing table fails the
// check rather than returning a zero.
func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	var books, users int64

	if h.db == nil {
		checks["database"] = "not configured"
		status = "unhealthy"
	} else if sqlDB, err := h.db.DB.DB(); err != nil {
		checks["database"] = "error: " + err.Error()
		status = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		checks["database"] = "error: " + err.Error()
		status = "unhealthy"
	} else {
		checks["database"] = "ok"
		if err := h.db.DB.Model(&entities.Book{}).Count(&books).Error; err != nil {
			checks["books"] = "error: " + err.Error()
			status = "unhealthy"
		}
		if err := h.db.DB.Model(&entities.User{}).Count(&users).Error; err != nil {
			checks["users"] = "error: " + err.Error()
			status = "unhealthy"
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:   status,
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Checks:   checks,
		Catalog:  books,
		Accounts: users,
	})
}
