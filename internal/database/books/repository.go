// Package books provides database operations for the book catalog.
//
// Reads operate on the full catalog; every mutation is scoped to the
// requesting owner, so a book that exists but belongs to someone else
// behaves exactly like a book that does not exist.
//
// # Usage
//
//	repo := books.NewRepository(db)
//	catalog, err := repo.List("dune")
package books

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/bookshare/bookshare/internal/database"
	"github.com/bookshare/bookshare/internal/entities"
)

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full catalog, or only books whose title contains the
// search term as a case-insensitive substring. A term that is empty
// after trimming returns everything.
func (r *Repository) List(search string) ([]entities.Book, error) {
	var books []entities.Book
	query := r.db.Preload("Owner")
	if term := strings.TrimSpace(search); term != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+term+"%")
	}
	err := query.Find(&books).Error
	return books, err
}

// ListOwnedBy returns only the given user's books.
func (r *Repository) ListOwnedBy(ownerID uint) ([]entities.Book, error) {
	var books []entities.Book
	err := r.db.Preload("Owner").Where("owner_id = ?", ownerID).Find(&books).Error
	return books, err
}

// GetByID retrieves a single book regardless of owner.
func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.Preload("Owner").First(&book, id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

// GetOwnedByID retrieves a book only if the given user owns it.
// Returns database.ErrNotFound otherwise, hiding whether the book
// exists at all.
func (r *Repository) GetOwnedByID(id, ownerID uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.Preload("Owner").Where("id = ? AND owner_id = ?", id, ownerID).First(&book).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &book, nil
}

// Create inserts a new book owned by the given user. A second book with
// the same title and owner fails with database.ErrDuplicate; the unique
// index does the arbitration, not a pre-check.
func (r *Repository) Create(title, description string, ownerID uint) (*entities.Book, error) {
	book := &entities.Book{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
		IsAvailable: true,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return book, nil
}

// BookFields holds the mutable fields for updates. Nil pointers leave
// the stored value untouched (partial update).
type BookFields struct {
	Title       *string
	Description *string
	IsAvailable *bool
}

// Update mutates a book's title and/or description on behalf of its
// owner. Owner and creation timestamp never change.
func (r *Repository) Update(id, ownerID uint, fields BookFields) (*entities.Book, error) {
	book, err := r.GetOwnedByID(id, ownerID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if fields.Title != nil {
		updates["title"] = *fields.Title
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.IsAvailable != nil {
		updates["is_available"] = *fields.IsAvailable
	}
	if len(updates) == 0 {
		return book, nil
	}

	if err := r.db.Model(book).Updates(updates).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return book, nil
}

// Delete removes a book on behalf of its owner.
func (r *Repository) Delete(id, ownerID uint) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entities.Book{})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// BookRow is a flat row returned by the raw title search.
type BookRow struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     uint      `json:"owner_id"`
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// SearchByTitle matches a title fragment directly against storage with
// a parameterized LIKE. The fragment is bound, never concatenated into
// the statement.
func (r *Repository) SearchByTitle(fragment string) ([]BookRow, error) {
	var rows []BookRow
	pattern := "%" + strings.TrimSpace(fragment) + "%"
	err := r.db.Raw(
		"SELECT id, title, description, owner_id, is_available, created_at FROM books WHERE title LIKE ?",
		pattern,
	).Scan(&rows).Error
	return rows, err
}
