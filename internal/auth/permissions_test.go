package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bookshare/bookshare/internal/entities"
)

func TestRequiredCapability(t *testing.T) {
	assert.Equal(t, CapAuthenticated, RequiredCapability(ActionList))
	assert.Equal(t, CapAuthenticated, RequiredCapability(ActionRetrieve))
	assert.Equal(t, CapAuthenticated, RequiredCapability(ActionCreate))
	assert.Equal(t, CapOwner, RequiredCapability(ActionUpdate))
	assert.Equal(t, CapOwner, RequiredCapability(ActionDelete))
}

func TestRequiredCapability_UnknownActionIsStrict(t *testing.T) {
	assert.Equal(t, CapOwner, RequiredCapability(Action("promote")))
}

func TestCanWrite(t *testing.T) {
	book := &entities.Book{OwnerID: 7}

	assert.True(t, CanWrite(7, book))
	assert.False(t, CanWrite(8, book))
	assert.False(t, CanWrite(0, book))
}
