package app

import "context"

// Store is a durable client-side key-value store. Implementations live in
// infra/kv; the service treats values as opaque bytes.
type Store interface {
	// Get returns the value at key, with found=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Put writes value at key, replacing any prior value.
	Put(ctx context.Context, key string, value []byte) error
}

// Hooks are optional callbacks fired by the service after mutations.
// Nil fields are skipped. Callbacks run outside the service lock.
type Hooks struct {
	// Changed fires after every committed mutation.
	Changed func()
	// Notice carries user-facing confirmations ("Added to cart").
	Notice func(msg string)
}
