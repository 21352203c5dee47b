package userspace

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/userspacekit/userspace/pkg/extradata"
)

// SessionInfo is the identity view returned for a live session.
type SessionInfo struct {
	Username  string
	UserID    int64
	ExtraData any
}

// ValidateUser checks a username/password pair and, on success, issues a new
// session carrying extra. The returned key is opaque; callers must not read
// structure into it.
//
// An unknown username and a wrong password are indistinguishable: both
// return ("", 0, nil).
func (u *UserSpace) ValidateUser(ctx context.Context, username, password string, extra any) (string, int64, error) {
	query := u.conn.Rebind(
		`SELECT userid, salt, password_hash FROM identities WHERE username = ?`)

	var (
		id               int64
		saltHex, hashHex string
	)
	err := u.db.QueryRowContext(ctx, query, username).Scan(&id, &saltHex, &hashHex)
	if errors.Is(err, sql.ErrNoRows) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, errors.Join(ErrBadCall, err)
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", 0, fmt.Errorf("decode stored salt: %w", err)
	}
	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return "", 0, fmt.Errorf("decode stored hash: %w", err)
	}

	if !u.hasher.Verify(password, salt, expected) {
		return "", 0, nil
	}

	key, err := u.issueSession(ctx, id, extra)
	if err != nil {
		return "", 0, err
	}
	return key, id, nil
}

// CheckKey looks up a session and renews it. Outcomes:
//
//   - StatusNotFound: no session row for key.
//   - StatusExpired: the session had lapsed; the row is deleted, so a second
//     check on the same key reports StatusNotFound.
//   - StatusOK: the session is live; its expiration is reset to now + TTL and
//     the identity view is returned.
//
// A session whose identity row has been removed externally fails with
// ErrOrphanedSession.
func (u *UserSpace) CheckKey(ctx context.Context, key string) (Status, *SessionInfo, error) {
	query := u.conn.Rebind(`
		SELECT s.userid, s.expiration, s.extra_data, i.username
		FROM sessions s
		LEFT JOIN identities i ON i.userid = s.userid
		WHERE s.key = ?`)

	var (
		userid     int64
		expiration int64
		blob       []byte
		username   sql.NullString
	)
	err := u.db.QueryRowContext(ctx, query, key).Scan(&userid, &expiration, &blob, &username)
	if errors.Is(err, sql.ErrNoRows) {
		return StatusNotFound, nil, nil
	}
	if err != nil {
		return 0, nil, errors.Join(ErrBadCall, err)
	}

	if !username.Valid {
		u.logger.Error("orphaned session detected",
			slog.String("store", u.name),
			slog.Int64("userid", userid),
		)
		return 0, nil, fmt.Errorf("%w: userid %d", ErrOrphanedSession, userid)
	}

	now := u.now()
	if expiration < now.UnixMilli() {
		// Destructive read: the expired row goes away with this check.
		if err := u.killSession(ctx, key); err != nil {
			return 0, nil, err
		}
		return StatusExpired, nil, nil
	}

	info := &SessionInfo{Username: username.String, UserID: userid}
	if blob != nil {
		if info.ExtraData, err = extradata.Decode(blob); err != nil {
			return 0, nil, err
		}
	}

	_, err = u.db.ExecContext(ctx,
		u.conn.Rebind(`UPDATE sessions SET expiration = ? WHERE key = ?`),
		now.UnixMilli()+u.ttlMillis.Load(), key,
	)
	if err != nil {
		return 0, nil, errors.Join(ErrBadCall, err)
	}
	return StatusOK, info, nil
}

func (u *UserSpace) issueSession(ctx context.Context, userid int64, extra any) (string, error) {
	blob, err := encodeNullable(extra)
	if err != nil {
		return "", err
	}

	now := u.now()
	key := sessionKey(userid, now)

	_, err = u.db.ExecContext(ctx,
		u.conn.Rebind(`INSERT INTO sessions (userid, key, expiration, extra_data) VALUES (?, ?, ?, ?)`),
		userid, key, now.UnixMilli()+u.ttlMillis.Load(), blob,
	)
	if err != nil {
		return "", errors.Join(ErrBadCall, err)
	}
	return key, nil
}

func (u *UserSpace) killSession(ctx context.Context, key string) error {
	_, err := u.db.ExecContext(ctx, u.conn.Rebind(`DELETE FROM sessions WHERE key = ?`), key)
	if err != nil {
		return errors.Join(ErrBadCall, err)
	}
	return nil
}

// sessionKey derives the opaque token for one issuance. The nanosecond
// timestamp keeps rapid repeat logins from colliding.
func sessionKey(userid int64, issued time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d:%d", userid, issued.UnixNano()))
	return hex.EncodeToString(sum[:])
}
