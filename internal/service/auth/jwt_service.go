package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given user.
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, userID int64) (string, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Returns the claims containing user information if the token is valid,
	// or an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the decoded contents of a validated token.
//
// The user identity is a numeric ID internally but travels through the
// token as the string-typed subject claim. The round trip is an explicit
// contract: the subject is the canonical decimal form of the int64 ID
// (no leading zeros, no sign for positive values), and validation rejects
// anything that does not round-trip losslessly.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for,
	// reconstituted from the subject claim.
	UserID int64 `json:"uid,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
