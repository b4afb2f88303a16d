package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookshare/bookshare/internal/database"
	"github.com/bookshare/bookshare/internal/entities"
)

// FavouritesStore defines database operations for favourites management.
type FavouritesStore interface {
	Create(userID, bookID uint) (*entities.Favourite, error)
	ListForUser(userID uint) ([]entities.Favourite, error)
	GetForUser(id, userID uint) (*entities.Favourite, error)
	Delete(id, userID uint) error
}

type FavouritesController struct {
	store FavouritesStore
}

func NewFavouritesController(store FavouritesStore) *FavouritesController {
	return &FavouritesController{store: store}
}

type favouriteResponse struct {
	ID      uint         `json:"id"`
	UserID  uint         `json:"user"`
	Book    bookResponse `json:"book"`
	AddedAt time.Time    `json:"added_at"`
}

func toFavouriteResponse(fav *entities.Favourite) favouriteResponse {
	return favouriteResponse{
		ID:      fav.ID,
		UserID:  fav.UserID,
		Book:    toBookResponse(&fav.Book),
		AddedAt: fav.AddedAt,
	}
}

// List returns the caller's favourites with their books.
// GET /api/favourites/
func (fc *FavouritesController) List(c *gin.Context) {
	favs, err := fc.store.ListForUser(GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list favourites")
		return
	}

	out := make([]favouriteResponse, 0, len(favs))
	for i := range favs {
		out = append(out, toFavouriteResponse(&favs[i]))
	}
	c.JSON(http.StatusOK, out)
}

// Retrieve returns one of the caller's favourites.
// GET /api/favourites/:id/
func (fc *FavouritesController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	fav, err := fc.store.GetForUser(id, GetUserID(c))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "favourite")
			return
		}
		respondInternalError(c, err, "get favourite")
		return
	}
	c.JSON(http.StatusOK, toFavouriteResponse(fav))
}

type favouriteCreateRequest struct {
	Book uint `json:"book"`
}

// Create marks a book as one of the caller's favourites.
// POST /api/favourites/
func (fc *FavouritesController) Create(c *gin.Context) {
	var req favouriteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	fav, err := fc.store.Create(GetUserID(c), req.Book)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		if errors.Is(err, database.ErrDuplicate) {
			respondBadRequest(c, "This book is already in your favourites.")
			return
		}
		respondInternalError(c, err, "create favourite")
		return
	}
	respondCreated(c, toFavouriteResponse(fav))
}

// Delete removes one of the caller's favourites. Another user's
// favourite is reported as missing.
// DELETE /api/favourites/:id/
func (fc *FavouritesController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := fc.store.Delete(id, GetUserID(c)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "favourite")
			return
		}
		respondInternalError(c, err, "delete favourite")
		return
	}
	c.Status(http.StatusNoContent)
}
