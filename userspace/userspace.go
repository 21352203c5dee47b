package userspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/userspacekit/userspace/pkg/extradata"
	"github.com/userspacekit/userspace/pkg/kdf"
)

// DefaultSessionTTL is the expiration window applied to new and renewed
// sessions unless SetSessionTTL changes it.
const DefaultSessionTTL = 3600 * time.Second

// UserSpace is the credential store and session manager for one named store.
// All methods are safe for concurrent use; cross-operation consistency is
// whatever the backing store's transactional guarantees provide.
type UserSpace struct {
	name   string
	db     *sql.DB
	conn   Connector
	hasher kdf.Params
	logger *slog.Logger

	ttlMillis atomic.Int64

	now func() time.Time
}

// Option customizes a UserSpace at construction time.
type Option func(*UserSpace)

// WithLogger sets a custom logger. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(u *UserSpace) {
		u.logger = logger
	}
}

// WithKDFParams overrides the password hashing parameters. Construction
// fails if they validate below the package minimums.
func WithKDFParams(p kdf.Params) Option {
	return func(u *UserSpace) {
		u.hasher = p
	}
}

// WithSessionTTL sets the initial session TTL. Construction fails on
// non-positive values.
func WithSessionTTL(d time.Duration) Option {
	return func(u *UserSpace) {
		u.ttlMillis.Store(d.Milliseconds())
	}
}

// WithClock overrides the time source used for session issuance, expiry
// checks and renewal. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(u *UserSpace) {
		u.now = now
	}
}

func newUserSpace(ctx context.Context, name string, conn Connector, params Params, opts ...Option) (*UserSpace, error) {
	u := &UserSpace{
		name:   name,
		conn:   conn,
		hasher: kdf.Default,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
	u.ttlMillis.Store(DefaultSessionTTL.Milliseconds())

	for _, opt := range opts {
		opt(u)
	}

	if err := u.hasher.Validate(); err != nil {
		return nil, errors.Join(ErrBadCall, err)
	}
	if u.ttlMillis.Load() <= 0 {
		return nil, fmt.Errorf("%w: session ttl must be positive", ErrBadCall)
	}

	db, err := conn.Open(ctx, params)
	if err != nil {
		return nil, errors.Join(ErrBadCall, fmt.Errorf("open store %q: %w", name, err))
	}

	if err := ensureSchema(ctx, db, conn); err != nil {
		db.Close()
		return nil, errors.Join(ErrBadCall, err)
	}

	u.db = db
	u.logger.Debug("user space ready", slog.String("store", name))
	return u, nil
}

// Name returns the store name this instance was opened with.
func (u *UserSpace) Name() string {
	return u.name
}

// SessionTTL returns the current store-wide session TTL.
func (u *UserSpace) SessionTTL() time.Duration {
	return time.Duration(u.ttlMillis.Load()) * time.Millisecond
}

// SetSessionTTL changes the store-wide TTL. Only sessions issued or renewed
// afterward carry the new window; live sessions keep their expiration until
// their next renewal. Non-positive values fail with ErrBadCall.
func (u *UserSpace) SetSessionTTL(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%w: session ttl must be positive, got %s", ErrBadCall, d)
	}
	u.ttlMillis.Store(d.Milliseconds())
	return nil
}

// encodeNullable maps nil to a stored SQL NULL (the "no data" marker) and
// everything else through the extradata codec.
func encodeNullable(extra any) (any, error) {
	if extra == nil {
		return nil, nil
	}
	blob, err := extradata.Encode(extra)
	if err != nil {
		return nil, errors.Join(ErrBadCall, err)
	}
	return blob, nil
}
