// Package favourites provides database operations for the user-to-book
// favourites relation.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	favs, err := repo.ListForUser(userID)
package favourites

import (
	"gorm.io/gorm"

	"github.com/bookshare/bookshare/internal/database"
	"github.com/bookshare/bookshare/internal/entities"
)

// Repository handles all favourites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create marks a book as one of the user's favourites. Favouriting the
// same book twice fails with database.ErrDuplicate via the unique
// (user_id, book_id) index. A missing book fails with ErrNotFound.
func (r *Repository) Create(userID, bookID uint) (*entities.Favourite, error) {
	var book entities.Book
	if err := r.db.Preload("Owner").First(&book, bookID).Error; err != nil {
		return nil, database.TranslateError(err)
	}

	fav := &entities.Favourite{
		UserID: userID,
		BookID: bookID,
	}
	if err := r.db.Create(fav).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	fav.Book = book
	return fav, nil
}

// ListForUser returns the user's favourites with their books loaded.
func (r *Repository) ListForUser(userID uint) ([]entities.Favourite, error) {
	var favs []entities.Favourite
	err := r.db.Preload("Book.Owner").Preload("Book").Where("user_id = ?", userID).Find(&favs).Error
	return favs, err
}

// GetForUser retrieves a favourite only if it belongs to the user.
func (r *Repository) GetForUser(id, userID uint) (*entities.Favourite, error) {
	var fav entities.Favourite
	err := r.db.Preload("Book.Owner").Preload("Book").Where("id = ? AND user_id = ?", id, userID).First(&fav).Error
	if err != nil {
		return nil, database.TranslateError(err)
	}
	return &fav, nil
}

// Delete removes a favourite on behalf of the user who created it.
// Another user's favourite looks like it does not exist.
func (r *Repository) Delete(id, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Favourite{})
	if result.Error != nil {
		return database.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
