package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	cartapp "github.com/greencart/storefront/internal/cart/app"
)

const clientIDKey = "clientID"

// EnsureClientID returns the persisted installation identity, minting and
// storing a fresh one on first run. The id is sent with every backend
// request so the server can correlate anonymous sessions.
func EnsureClientID(ctx context.Context, store cartapp.Store) (string, error) {
	raw, found, err := store.Get(ctx, clientIDKey)
	if err == nil && found && len(raw) > 0 {
		return string(raw), nil
	}

	id := uuid.NewString()
	if err := store.Put(ctx, clientIDKey, []byte(id)); err != nil {
		// The id still identifies this session; only persistence failed.
		return id, fmt.Errorf("persist client id: %w", err)
	}
	return id, nil
}
