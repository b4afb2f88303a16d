package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bookshare/bookshare/internal/config"
	"github.com/bookshare/bookshare/internal/database"
	"github.com/bookshare/bookshare/internal/database/users"
	"github.com/bookshare/bookshare/internal/entities"
	"github.com/bookshare/bookshare/internal/validation"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrEmailTaken         = errors.New("email already in use")
)

// Service handles registration, credential checks and the token
// lifecycle.
type Service struct {
	users     *users.Repository
	tokens    *TokenManager
	blacklist *Blacklist
	config    config.Auth
}

// NewService creates a new authentication service.
func NewService(db *gorm.DB, cfg config.Auth) *Service {
	return &Service{
		users:     users.NewRepository(db),
		tokens:    NewTokenManager(cfg),
		blacklist: NewBlacklist(db),
		config:    cfg,
	}
}

// Register creates a new account. Field validations run in order
// (username, email, password) and return field-scoped errors; the email
// uniqueness check is repository-level. Registration never issues
// tokens.
func (s *Service) Register(username, email, password string) (*entities.User, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, err
	}

	taken, err := s.users.EmailExists(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(username, email, passwordHash)
	if err != nil {
		// The unique indexes catch races the pre-check missed, plus
		// duplicate usernames which have no dedicated pre-check.
		if errors.Is(err, database.ErrDuplicate) {
			return nil, &validation.FieldError{
				Field:   "username",
				Message: "A user with that username or email already exists.",
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates credentials and returns the user.
func (s *Service) Authenticate(username, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// IssueTokens creates an access/refresh pair for an authenticated user.
func (s *Service) IssueTokens(user *entities.User) (*TokenPair, error) {
	return s.tokens.IssuePair(user.ID)
}

// Refresh exchanges a valid, non-blacklisted refresh token for a new
// access token.
func (s *Service) Refresh(refreshToken string) (string, error) {
	claims, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", ErrInvalidToken
	}

	revoked, err := s.blacklist.IsRevoked(claims.ID)
	if err != nil {
		return "", fmt.Errorf("failed to check blacklist: %w", err)
	}
	if revoked {
		return "", ErrInvalidToken
	}

	return s.tokens.IssueAccess(claims.UserID)
}

// Logout blacklists the refresh token. Malformed, expired and
// already-revoked tokens all map to ErrInvalidToken so the endpoint can
// render a uniform invalid-token response; database failures pass
// through as internal errors.
func (s *Service) Logout(refreshToken string) error {
	claims, err := s.tokens.Verify(refreshToken, TokenTypeRefresh)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.blacklist.Revoke(claims.ID, claims.ExpiresAt.Time); err != nil {
		if errors.Is(err, ErrTokenRevoked) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// VerifyAccess validates an access token and loads its user.
func (s *Service) VerifyAccess(accessToken string) (*entities.User, error) {
	claims, err := s.tokens.Verify(accessToken, TokenTypeAccess)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(claims.UserID)
	if err != nil {
		// Token outlived the account.
		return nil, ErrInvalidToken
	}
	return user, nil
}

// Blacklist exposes the revoked-token store for the cleanup job.
func (s *Service) Blacklist() *Blacklist {
	return s.blacklist
}
