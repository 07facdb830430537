package credential

import "errors"

var (
	// ErrUnknownHasher is returned by New when the configured algorithm is not supported.
	ErrUnknownHasher = errors.New("unknown password hasher")

	// ErrEmptyStamp is returned when hashing without a security stamp.
	ErrEmptyStamp = errors.New("security stamp can not be empty")
)
