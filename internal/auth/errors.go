package auth

import "errors"

var (
	// ErrInvalidOldPassword is returned when the provided old password does not match the user's current password.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrUserExists is returned when attempting to create a user with a username that already exists.
	ErrUserExists = errors.New("user with username already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidCode is returned when the one-time code of a TOTP enabled account is wrong.
	ErrInvalidCode = errors.New("invalid one-time code")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmptySecret is returned by SignToken without a shared secret.
	ErrEmptySecret = errors.New("token secret is empty")

	// ErrInvalidToken is returned for a missing, expired or badly signed bearer token.
	ErrInvalidToken = errors.New("invalid bearer token")
)
