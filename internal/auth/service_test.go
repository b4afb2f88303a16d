package auth

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bookshare/bookshare/internal/entities"
	"github.com/bookshare/bookshare/internal/validation"
)

func setupTestService(t *testing.T) (*Service, func()) {
	t.Helper()
	dbPath := "./test_auth_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.User{}, &entities.Book{}, &entities.Favourite{}, &entities.RevokedToken{})
	require.NoError(t, err)

	service := NewService(db, testAuthConfig())

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return service, cleanup
}

func TestService_Register(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.Register("alice", "alice@x.co", "secret1")

	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.NotEmpty(t, user.PasswordHash)
}

func TestService_Register_ValidatesInOrder(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	// Bad username and bad email: username error wins
	_, err := service.Register("a!", "nope", "secret1")
	var fieldErr *validation.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "username", fieldErr.Field)

	_, err = service.Register("alice", "nope", "secret1")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "email", fieldErr.Field)

	_, err = service.Register("alice", "alice@x.co", "short")
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "password", fieldErr.Field)
}

func TestService_Register_EmailTaken(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)

	// Same email, different username
	_, err = service.Register("alice2", "alice@x.co", "secret1")

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_DuplicateUsername(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)

	_, err = service.Register("alice", "other@x.co", "secret1")

	var fieldErr *validation.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "username", fieldErr.Field)
}

func TestService_Authenticate(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)

	user, err := service.Authenticate("alice", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = service.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = service.Authenticate("nobody", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_TokenLifecycle(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)

	pair, err := service.IssueTokens(user)
	require.NoError(t, err)

	// Access token identifies the user
	verified, err := service.VerifyAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	// Refresh yields a fresh access token
	access, err := service.Refresh(pair.Refresh)
	require.NoError(t, err)
	verified, err = service.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	// Logout blacklists the refresh token
	require.NoError(t, service.Logout(pair.Refresh))

	_, err = service.Refresh(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// Second logout with the same token fails too
	assert.ErrorIs(t, service.Logout(pair.Refresh), ErrInvalidToken)
}

func TestService_Refresh_RejectsAccessToken(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)
	pair, err := service.IssueTokens(user)
	require.NoError(t, err)

	_, err = service.Refresh(pair.Access)

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_VerifyAccess_DeletedUser(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)
	pair, err := service.IssueTokens(user)
	require.NoError(t, err)

	// Token outlives the account
	require.NoError(t, service.users.Delete(user.ID))

	_, err = service.VerifyAccess(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestBlacklist_RevokeTwice(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	expiry := time.Now().Add(time.Hour)
	require.NoError(t, service.Blacklist().Revoke("some-jti", expiry))

	assert.ErrorIs(t, service.Blacklist().Revoke("some-jti", expiry), ErrTokenRevoked)
}

// A broken database during logout is an infrastructure failure, not an
// invalid token.
func TestService_Logout_DatabaseFailure(t *testing.T) {
	dbPath := "./test_auth_logout_dbfail.db"
	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	defer os.Remove(dbPath)

	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.RevokedToken{}))
	service := NewService(db, testAuthConfig())

	user := &entities.User{Username: "alice", Email: "alice@x.co", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	pair, err := service.IssueTokens(user)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = service.Logout(pair.Refresh)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestBlacklist_PurgeExpired(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	user, err := service.Register("alice", "alice@x.co", "secret1")
	require.NoError(t, err)
	pair, err := service.IssueTokens(user)
	require.NoError(t, err)
	require.NoError(t, service.Logout(pair.Refresh))

	// Entry is still live, purge keeps it
	require.NoError(t, service.Blacklist().PurgeExpired())
	_, err = service.Refresh(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
