package domain

import "context"

// TokenStore is the durable single-key home of the session token.
// A missing token loads as "" with a nil error.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
