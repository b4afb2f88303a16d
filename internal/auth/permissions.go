package auth

import "github.com/bookshare/bookshare/internal/entities"

// Action is the kind of operation a request wants to perform on a
// resource.
type Action string

const (
	ActionList     Action = "list"
	ActionRetrieve Action = "retrieve"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
)

// Capability is what an action demands of the requester.
type Capability int

const (
	// CapAuthenticated requires only a valid identity.
	CapAuthenticated Capability = iota
	// CapOwner additionally requires the requester to own the resource.
	CapOwner
)

// requiredCapabilities maps each action to what it demands. Reads need
// authentication only; every mutation of an existing record needs
// ownership.
var requiredCapabilities = map[Action]Capability{
	ActionList:     CapAuthenticated,
	ActionRetrieve: CapAuthenticated,
	ActionCreate:   CapAuthenticated,
	ActionUpdate:   CapOwner,
	ActionDelete:   CapOwner,
}

// RequiredCapability returns the capability an action demands.
// Unknown actions demand ownership, the stricter default.
func RequiredCapability(action Action) Capability {
	if cap, ok := requiredCapabilities[action]; ok {
		return cap
	}
	return CapOwner
}

// CanWrite reports whether the user may mutate the book. Only the
// owner holds write permission.
func CanWrite(userID uint, book *entities.Book) bool {
	return book.OwnerID == userID
}
