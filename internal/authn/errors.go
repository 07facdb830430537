package authn

import "errors"

var (
	// ErrInvalidArgument is returned when the login request misses user name or password.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoDirectory is returned by NewAuthenticator when no directory is given.
	ErrNoDirectory = errors.New("directory can not be nil")
)
