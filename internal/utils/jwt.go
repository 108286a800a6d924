package utils // package utils provides helper functions for token creation and identifiers

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"       // uuid generates tenant identifiers
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Exp stores the expiration
// timestamp.  Tokens are presented in the Authorization header when
// calling protected endpoints; expiry is the only invalidation mechanism,
// there is no revocation list.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, the user's canonical role, and a TTL in
// hours.  The JWT carries the subject (sub), role, expiration (exp) and
// issued at (iat) claims.
func NewAccessToken(secret string, userID uint64, role string, ttlHours int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// NewTenantID returns a fresh globally unique tenant identifier.  Tenant
// accounts are addressed by this value on the landlord- and admin-facing
// endpoints instead of their numeric user id.
func NewTenantID() string {
	return uuid.NewString()
}
