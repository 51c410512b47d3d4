package api

import "errors"

// Authorization and Routing errors from §7. These sit above
// *domain.ActionError in the taxonomy the façade exposes; a transport
// distinguishes them by identity with errors.Is, not by message text.
var (
	ErrBadToken                = errors.New("api: bad token")
	ErrTokenNotForThisResource = errors.New("api: token not valid for this resource")

	ErrInvalidSizePreferences = errors.New("api: invalid lobby size preferences")

	ErrNoSuchGame    = errors.New("api: no such game")
	ErrNoSuchPlayer  = errors.New("api: no such player")
	ErrNotMatchedYet = errors.New("api: lobby player not matched yet")
)
