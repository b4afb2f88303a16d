package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/bookshare/bookshare/internal/database"
	"github.com/bookshare/bookshare/internal/entities"
)

// Blacklist stores revoked refresh-token IDs until the tokens would
// have expired on their own.
type Blacklist struct {
	db *gorm.DB
}

// NewBlacklist creates a blacklist backed by the revoked_tokens table.
func NewBlacklist(db *gorm.DB) *Blacklist {
	return &Blacklist{db: db}
}

// Revoke records the token's JTI. Revoking the same token twice yields
// ErrTokenRevoked; infrastructure failures pass through so callers can
// tell a replayed token from a broken database.
func (b *Blacklist) Revoke(jti string, expiresAt time.Time) error {
	revoked := &entities.RevokedToken{
		JTI:       jti,
		ExpiresAt: expiresAt,
	}
	if err := database.TranslateError(b.db.Create(revoked).Error); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return ErrTokenRevoked
		}
		return fmt.Errorf("failed to record revoked token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the JTI has been blacklisted.
func (b *Blacklist) IsRevoked(jti string) (bool, error) {
	var revoked entities.RevokedToken
	err := b.db.Where("jti = ?", jti).First(&revoked).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PurgeExpired deletes blacklist entries for tokens that are past their
// expiry and so can no longer be replayed. Run periodically.
func (b *Blacklist) PurgeExpired() error {
	result := b.db.Where("expires_at < ?", time.Now()).Delete(&entities.RevokedToken{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d expired revoked tokens", result.RowsAffected)
	}
	return nil
}
