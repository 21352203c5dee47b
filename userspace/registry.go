package userspace

import (
	"context"
	"fmt"
	"sync"
)

// Registry hands out one live UserSpace per store name. It is safe for
// concurrent use; entries are never removed for the life of the process.
type Registry struct {
	conn Connector
	opts []Option

	mu      sync.Mutex
	entries map[string]*registryEntry
}

type registryEntry struct {
	once  sync.Once
	space *UserSpace
	err   error
}

// New creates a Registry whose stores are reached through conn. The options
// apply to every UserSpace the registry constructs.
func New(conn Connector, opts ...Option) *Registry {
	return &Registry{
		conn:    conn,
		opts:    opts,
		entries: make(map[string]*registryEntry),
	}
}

// Open returns the UserSpace for name, constructing it on first use:
// connect, run schema initialization, install the instance. Later calls
// return the same instance and ignore params entirely (first caller wins).
// Concurrent first callers block until the winner finishes.
//
// An empty name fails with ErrBadCall. A failed construction stays failed
// for the process lifetime, matching the one-entry-per-store contract.
func (r *Registry) Open(ctx context.Context, name string, params Params) (*UserSpace, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: store name is required", ErrBadCall)
	}

	r.mu.Lock()
	e, ok := r.entries[name]
	if !ok {
		e = &registryEntry{}
		r.entries[name] = e
	}
	r.mu.Unlock()

	e.once.Do(func() {
		params.Name = name
		e.space, e.err = newUserSpace(ctx, name, r.conn, params, r.opts...)
	})
	return e.space, e.err
}
