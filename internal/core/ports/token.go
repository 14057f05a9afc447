package ports

import (
	"context"
	"time"
)

// Identity is the authenticated principal attached to a request after the
// auth middleware has verified its token.
type Identity struct {
	UserID string
	Role   string
}

// TokenVerifier checks a session token's signature and expiry.
type TokenVerifier interface {
	// VerifyToken returns the identity encoded in the token, or
	// domain.ErrInvalidToken on any signature, shape, or expiry failure.
	VerifyToken(token string) (Identity, error)
}

// TokenRevoker is the revocation list consulted on every authenticated
// request. Entries expire together with the token they revoke.
type TokenRevoker interface {
	// Revoke records the token as invalid for ttl.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// CodeVerifier validates a time-based one-time code against a stored secret.
type CodeVerifier interface {
	VerifyCode(secret, code string) bool
}
