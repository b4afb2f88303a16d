package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookshare/bookshare/internal/auth"
	"github.com/bookshare/bookshare/internal/database"
	"github.com/bookshare/bookshare/internal/database/books"
	"github.com/bookshare/bookshare/internal/entities"
	"github.com/bookshare/bookshare/internal/validation"
)

// BooksStore defines database operations for the book catalog.
type BooksStore interface {
	List(search string) ([]entities.Book, error)
	GetByID(id uint) (*entities.Book, error)
	GetOwnedByID(id, ownerID uint) (*entities.Book, error)
	Create(title, description string, ownerID uint) (*entities.Book, error)
	Update(id, ownerID uint, fields books.BookFields) (*entities.Book, error)
	Delete(id, ownerID uint) error
	SearchByTitle(fragment string) ([]books.BookRow, error)
}

type BooksController struct {
	store BooksStore
}

func NewBooksController(store BooksStore) *BooksController {
	return &BooksController{store: store}
}

// bookResponse is the wire shape of a book; the owner is rendered as a
// username, never as a bare foreign key.
type bookResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

func toBookResponse(book *entities.Book) bookResponse {
	return bookResponse{
		ID:          book.ID,
		Title:       book.Title,
		Description: book.Description,
		Owner:       book.Owner.Username,
		IsAvailable: book.IsAvailable,
		CreatedAt:   book.CreatedAt,
	}
}

func toBookResponses(books []entities.Book) []bookResponse {
	out := make([]bookResponse, 0, len(books))
	for i := range books {
		out = append(out, toBookResponse(&books[i]))
	}
	return out
}

// List returns the whole catalog, optionally filtered by a
// case-insensitive title substring.
// GET /api/books/?search=
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.store.List(c.Query("search"))
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, toBookResponses(books))
}

// Retrieve returns a single book. Reads are not owner-scoped.
// GET /api/books/:id/
func (bc *BooksController) Retrieve(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.bookForAction(id, GetUserID(c), auth.ActionRetrieve)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, toBookResponse(book))
}

type bookCreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Create adds a book owned by the caller.
// POST /api/books/
func (bc *BooksController) Create(c *gin.Context) {
	var req bookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := validateBookFields(c, &req.Title, &req.Description); err != nil {
		return
	}

	book, err := bc.store.Create(req.Title, req.Description, GetUserID(c))
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondBadRequest(c, "A book with this title already exists for this user.")
			return
		}
		respondInternalError(c, err, "create book")
		return
	}

	book.Owner.Username = auth.GetUsername(c)
	respondCreated(c, toBookResponse(book))
}

type bookUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsAvailable *bool   `json:"is_available"`
}

// Update mutates a book's title and/or description. Only the owner may
// do this; somebody else's book is reported as missing, not forbidden.
// PUT/PATCH /api/books/:id/
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if c.Request.Method == http.MethodPut && req.Title == nil {
		respondValidationError(c, &validation.FieldError{Field: "title", Message: "This field is required."})
		return
	}
	if err := validateBookFields(c, req.Title, req.Description); err != nil {
		return
	}

	userID := GetUserID(c)
	book, err := bc.bookForAction(id, userID, auth.ActionUpdate)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book for update")
		return
	}
	if !auth.CanWrite(userID, book) {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "you do not own this book"})
		return
	}

	updated, err := bc.store.Update(id, userID, books.BookFields{
		Title:       req.Title,
		Description: req.Description,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondBadRequest(c, "A book with this title already exists for this user.")
			return
		}
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}

	updated.Owner.Username = auth.GetUsername(c)
	c.JSON(http.StatusOK, toBookResponse(updated))
}

// Delete removes a book owned by the caller.
// DELETE /api/books/:id/
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.store.Delete(id, GetUserID(c)); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}

// SearchByTitle matches a title fragment directly against storage and
// returns flat rows.
// GET /api/books/by_title/?title=
func (bc *BooksController) SearchByTitle(c *gin.Context) {
	rows, err := bc.store.SearchByTitle(c.Query("title"))
	if err != nil {
		respondInternalError(c, err, "search books by title")
		return
	}
	c.JSON(http.StatusOK, gin.H{"books": rows})
}

// bookForAction loads a book with the scope the action's capability
// demands: owner-gated actions only see the caller's own books.
func (bc *BooksController) bookForAction(id, userID uint, action auth.Action) (*entities.Book, error) {
	if auth.RequiredCapability(action) == auth.CapOwner {
		return bc.store.GetOwnedByID(id, userID)
	}
	return bc.store.GetByID(id)
}

// validateBookFields checks whichever fields the request carries and
// renders the first field-scoped failure. Returns non-nil after
// responding.
func validateBookFields(c *gin.Context, title, description *string) error {
	if title != nil {
		if err := validation.ValidateTitle(*title); err != nil {
			var fieldErr *validation.FieldError
			errors.As(err, &fieldErr)
			respondValidationError(c, fieldErr)
			return err
		}
	}
	if description != nil {
		if err := validation.ValidateDescription(*description); err != nil {
			var fieldErr *validation.FieldError
			errors.As(err, &fieldErr)
			respondValidationError(c, fieldErr)
			return err
		}
	}
	return nil
}
