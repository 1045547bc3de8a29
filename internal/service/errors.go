package service

import "errors"

var (
	// ErrDuplicateLogin is returned by Register when the login is taken.
	ErrDuplicateLogin = errors.New("username already exists")

	// ErrInvalidCredentials covers both an unknown login and a wrong
	// password. The two cases are deliberately indistinguishable to the
	// caller.
	ErrInvalidCredentials = errors.New("incorrect username or password")

	// ErrUnauthorized is returned when a bearer token is malformed,
	// expired, or no longer resolves to a user.
	ErrUnauthorized = errors.New("could not validate credentials")
)
