package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidSubject indicates the token's subject claim does not carry a
	// valid user identity (non-numeric, non-canonical, or out of int64 range)
	ErrInvalidSubject = errors.New("authentication token subject is invalid")

	// ErrInvalidCredentials indicates a login attempt with an unknown username
	// or wrong password. The two cases deliberately share one error so the
	// response cannot distinguish them beyond this message.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
