// Package tokenstore persists OAuth2 tokens for the installed-app flow.
package tokenstore

import (
	"context"
	"errors"

	"golang.org/x/oauth2"
)

// ErrNotFound is returned when no token has been saved for an account.
var ErrNotFound = errors.New("tokenstore: token not found")

// Store loads and saves one OAuth2 token per account.
type Store interface {
	Load(ctx context.Context, account string) (*oauth2.Token, error)
	Save(ctx context.Context, account string, tok *oauth2.Token) error
}
