package userspace

import "errors"

var (
	// ErrBadCall marks caller mistakes: missing store names, zero-value
	// selectors, uniqueness violations and other store failures surfaced
	// from the connector. Never retried internally.
	ErrBadCall = errors.New("invalid call")

	// ErrOrphanedSession reports a session row whose identity row is gone.
	// This is a consistency violation caused by external mutation, distinct
	// from an ordinary not-found outcome.
	ErrOrphanedSession = errors.New("session references a deleted identity")
)
