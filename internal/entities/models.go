package entities

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:20" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Book is owned by exactly one user. No user may own two books with the
// same title; the composite index makes the storage layer the arbiter so
// concurrent conflicting creates resolve to one success.
type Book struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null;uniqueIndex:idx_books_title_owner" json:"title"`
	Description string    `gorm:"size:500" json:"description"`
	OwnerID     uint      `gorm:"not null;index;uniqueIndex:idx_books_title_owner" json:"owner_id"`
	Owner       User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	IsAvailable bool      `gorm:"default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
}

// Favourite links a user to a book they bookmarked. A user cannot
// favourite the same book twice.
type Favourite struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	UserID  uint      `gorm:"not null;uniqueIndex:idx_favourites_user_book" json:"user_id"`
	BookID  uint      `gorm:"not null;uniqueIndex:idx_favourites_user_book" json:"book_id"`
	User    User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book    Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"book,omitempty"`
	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`
}

// RevokedToken records a blacklisted refresh token by its JWT ID.
// Rows are kept until the token would have expired anyway, then purged
// by the scheduled cleanup job.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JTI       string    `gorm:"uniqueIndex;size:36" json:"jti"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
	RevokedAt time.Time `gorm:"autoCreateTime" json:"revoked_at"`
}

func (User) TableName() string {
	return "users"
}

func (Book) TableName() string {
	return "books"
}

func (Favourite) TableName() string {
	return "favourites"
}

func (RevokedToken) TableName() string {
	return "revoked_tokens"
}
