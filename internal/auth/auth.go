// Package auth carries a resolved request identity through the core instead
// of a hidden session store.
package auth

import "context"

type Identity struct {
	UserID int64
	OK     bool
}

var Anonymous = Identity{}

func User(id int64) Identity { return Identity{UserID: id, OK: true} }

// Provider resolves a session token to an identity; Anonymous when the token
// is missing, unknown or expired.
type Provider interface {
	Identify(ctx context.Context, token string) Identity
}
