package ports

import "errors"

var (
	// ErrNotFound is returned by repositories for unknown campaign, character
	// or chunk ids.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks writes that collide with existing state, such as
	// binding a character that is already placed in the active campaign.
	ErrConflict = errors.New("conflict")
)
