// Package middleware provides composable StateStore wrappers for concerns
// that sit between the runtime and the storage backend, such as encryption
// at rest and PII masking.
package middleware

import "github.com/aretw0/picbot/pkg/ports"

// Middleware allows wrapping a StateStore to add behavior.
type Middleware func(ports.StateStore) ports.StateStore

// Wrap applies middlewares to a store, innermost first, so the first
// middleware in the list sees Save calls before the rest.
func Wrap(store ports.StateStore, mws ...Middleware) ports.StateStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
