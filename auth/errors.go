package auth

import "errors"

var (
	// ErrInvalidArgument is returned when a caller supplies a value that can never be valid, such as
	// a non-positive token window.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIncompleteCredentials indicates token authentication is selected but one of the token,
	// expiry, or public key is missing.
	ErrIncompleteCredentials = errors.New("token authentication requires token, expiry, and public key")

	// ErrExpiredToken indicates the token expires within the safety margin or already has.
	ErrExpiredToken = errors.New("token is expired or about to expire")

	// ErrInvalidSignature indicates a token does not match the HMAC of its public key and expiry.
	ErrInvalidSignature = errors.New("token signature does not match")

	ErrUnknownMethod = errors.New("unknown authentication method")
)
