package userspace

import (
	"context"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/userspacekit/userspace/pkg/extradata"
)

// User is a full identity record. ExtraData is nil when no data was stored.
type User struct {
	ID        int64
	Username  string
	Email     string
	ExtraData any
}

// UserSummary is the listing row returned by AllUsers.
type UserSummary struct {
	ID       int64
	Username string
	Email    string
}

// UserUpdate names the identity fields to change. Nil fields are left
// untouched; there is no way to express "set extra data to nothing" through
// an update (a documented limitation carried from the original contract).
type UserUpdate struct {
	Username  *string
	Email     *string
	ExtraData any
}

// CreateUser inserts a new identity and returns its store-assigned userid.
// A fresh random salt is generated and the password is stored as its salted
// derivation, never in clear. Duplicate username or email fails with
// ErrBadCall.
func (u *UserSpace) CreateUser(ctx context.Context, username, password, email string, extra any) (int64, error) {
	salt, err := u.hasher.NewSalt()
	if err != nil {
		return 0, err
	}
	hash := u.hasher.Derive(password, salt)

	blob, err := encodeNullable(extra)
	if err != nil {
		return 0, err
	}

	query := u.conn.Rebind(`
		INSERT INTO identities (username, email, salt, password_hash, extra_data)
		VALUES (?, ?, ?, ?, ?)
		RETURNING userid`)

	var id int64
	err = u.db.QueryRowContext(ctx, query,
		username, email, hex.EncodeToString(salt), hex.EncodeToString(hash), blob,
	).Scan(&id)
	if err != nil {
		if u.conn.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: username or email already exists", ErrBadCall)
		}
		return 0, errors.Join(ErrBadCall, err)
	}
	return id, nil
}

// FindUser looks up one identity by the given selector. A missing record
// returns (nil, nil), distinct from an error.
func (u *UserSpace) FindUser(ctx context.Context, sel Selector) (*User, error) {
	column, value, err := sel.column()
	if err != nil {
		return nil, err
	}

	query := u.conn.Rebind(
		`SELECT userid, username, email, extra_data FROM identities WHERE ` + column + ` = ?`)

	var (
		user User
		blob []byte
	)
	err = u.db.QueryRowContext(ctx, query, value).Scan(&user.ID, &user.Username, &user.Email, &blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrBadCall, err)
	}

	if blob != nil {
		if user.ExtraData, err = extradata.Decode(blob); err != nil {
			return nil, err
		}
	}
	return &user, nil
}

// DeleteUser removes the identity selected by username or userid, along with
// any sessions it still holds. Selecting by email is not supported and fails
// with ErrBadCall. Returns StatusNotFound when nothing matched.
func (u *UserSpace) DeleteUser(ctx context.Context, sel Selector) (Status, error) {
	if sel.kind == selEmail {
		return 0, fmt.Errorf("%w: delete selects by username or userid only", ErrBadCall)
	}
	column, value, err := sel.column()
	if err != nil {
		return 0, err
	}

	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}
	defer tx.Rollback() // no-op once committed

	var id int64
	err = tx.QueryRowContext(ctx,
		u.conn.Rebind(`SELECT userid FROM identities WHERE `+column+` = ?`), value,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return StatusNotFound, nil
	}
	if err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}

	// Sessions go first so the identity never points at live sessions while
	// half-deleted.
	if _, err := tx.ExecContext(ctx, u.conn.Rebind(`DELETE FROM sessions WHERE userid = ?`), id); err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}
	if _, err := tx.ExecContext(ctx, u.conn.Rebind(`DELETE FROM identities WHERE userid = ?`), id); err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}
	return StatusOK, nil
}

// ModifyUser updates only the fields set in upd. An empty update succeeds
// without touching the store. Uniqueness is not re-checked here; a duplicate
// username or email surfaces as the store's constraint failure, wrapped in
// ErrBadCall.
func (u *UserSpace) ModifyUser(ctx context.Context, userid int64, upd UserUpdate) (Status, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if upd.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *upd.Username)
	}
	if upd.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *upd.Email)
	}
	if upd.ExtraData != nil {
		blob, err := encodeNullable(upd.ExtraData)
		if err != nil {
			return 0, err
		}
		sets = append(sets, "extra_data = ?")
		args = append(args, blob)
	}

	if len(sets) == 0 {
		return StatusOK, nil
	}
	args = append(args, userid)

	query := u.conn.Rebind(
		`UPDATE identities SET ` + strings.Join(sets, ", ") + ` WHERE userid = ?`)

	res, err := u.db.ExecContext(ctx, query, args...)
	if err != nil {
		if u.conn.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: username or email already exists", ErrBadCall)
		}
		return 0, errors.Join(ErrBadCall, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}
	if n == 0 {
		return StatusNotFound, nil
	}
	return StatusOK, nil
}

// ChangePassword verifies oldPassword against the current credential before
// replacing it. A mismatch returns StatusRejected with nothing mutated; the
// session minted by the verification step never escapes this call.
func (u *UserSpace) ChangePassword(ctx context.Context, userid int64, oldPassword, newPassword string) (Status, error) {
	var username string
	err := u.db.QueryRowContext(ctx,
		u.conn.Rebind(`SELECT username FROM identities WHERE userid = ?`), userid,
	).Scan(&username)
	if errors.Is(err, sql.ErrNoRows) {
		return StatusNotFound, nil
	}
	if err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}

	key, _, err := u.ValidateUser(ctx, username, oldPassword, nil)
	if err != nil {
		return 0, err
	}
	if key == "" {
		return StatusRejected, nil
	}
	if err := u.killSession(ctx, key); err != nil {
		return 0, err
	}

	return u.updatePassword(ctx, userid, newPassword)
}

// ResetPassword replaces the credential unconditionally. Like every password
// change, it rotates the salt.
func (u *UserSpace) ResetPassword(ctx context.Context, userid int64, newPassword string) (Status, error) {
	return u.updatePassword(ctx, userid, newPassword)
}

func (u *UserSpace) updatePassword(ctx context.Context, userid int64, newPassword string) (Status, error) {
	salt, err := u.hasher.NewSalt()
	if err != nil {
		return 0, err
	}
	hash := u.hasher.Derive(newPassword, salt)

	res, err := u.db.ExecContext(ctx,
		u.conn.Rebind(`UPDATE identities SET salt = ?, password_hash = ? WHERE userid = ?`),
		hex.EncodeToString(salt), hex.EncodeToString(hash), userid,
	)
	if err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, errors.Join(ErrBadCall, err)
	}
	if n == 0 {
		return StatusNotFound, nil
	}
	return StatusOK, nil
}

// AllUsers lists every identity, ordered by userid.
func (u *UserSpace) AllUsers(ctx context.Context) ([]UserSummary, error) {
	rows, err := u.db.QueryContext(ctx,
		`SELECT userid, username, email FROM identities ORDER BY userid`)
	if err != nil {
		return nil, errors.Join(ErrBadCall, err)
	}
	defer rows.Close()

	var users []UserSummary
	for rows.Next() {
		var s UserSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.Email); err != nil {
			return nil, errors.Join(ErrBadCall, err)
		}
		users = append(users, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrBadCall, err)
	}
	return users, nil
}
