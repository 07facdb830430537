package directory

import "errors"

var (
	// ErrNotFound is returned by lookups when no record matches.
	ErrNotFound = errors.New("record not found")

	// ErrNoStoreFactory is returned when a Manager was created without a StoreFactory.
	ErrNoStoreFactory = errors.New("directory store factory is nil")

	// ErrStoreUnavailable wraps failures of the StoreFactory.
	ErrStoreUnavailable = errors.New("directory store unavailable")
)

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
