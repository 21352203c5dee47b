package main

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"github.com/userspacekit/userspace/userspace"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.\w+$`)

type app struct {
	us     *userspace.UserSpace
	stdout io.Writer
	stderr io.Writer
}

// resolveUser finds a user by username first, then by email.
func (a *app) resolveUser(ctx context.Context, user string) (*userspace.User, error) {
	u, err := a.us.FindUser(ctx, userspace.ByUsername(user))
	if err != nil {
		return nil, err
	}
	if u == nil {
		u, err = a.us.FindUser(ctx, userspace.ByEmail(user))
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (a *app) addUser(ctx context.Context, args []string) int {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(a.stderr, "usage: adduser <email> [username]")
		return 2
	}
	email := args[0]
	username := email
	if len(args) == 2 {
		username = args[1]
	}

	if !emailPattern.MatchString(email) {
		fmt.Fprintf(a.stderr, "not a valid email address: %q\n", email)
		return 1
	}

	password, err := enterPassword(a.stdout, username)
	if err != nil {
		fmt.Fprintf(a.stderr, "%v\n", err)
		return 1
	}

	uid, err := a.us.CreateUser(ctx, username, password, email, nil)
	if err != nil {
		fmt.Fprintf(a.stderr, "create user: %v\n", err)
		return 1
	}
	fmt.Fprintf(a.stdout, "user %q created with uid %d\n", username, uid)
	return 0
}

func (a *app) changePassword(ctx context.Context, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "usage: cpasswd <user>")
		return 2
	}

	user, err := a.resolveUser(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.stderr, "%v\n", err)
		return 1
	}
	if user == nil {
		fmt.Fprintf(a.stderr, "user %q not found\n", args[0])
		return 1
	}

	password, err := enterPassword(a.stdout, user.Username)
	if err != nil {
		fmt.Fprintf(a.stderr, "%v\n", err)
		return 1
	}

	st, err := a.us.ResetPassword(ctx, user.ID, password)
	if err != nil {
		fmt.Fprintf(a.stderr, "reset password: %v\n", err)
		return 1
	}
	if st != userspace.StatusOK {
		fmt.Fprintf(a.stderr, "reset password: %s\n", st)
		return 1
	}
	fmt.Fprintf(a.stdout, "password changed for %q\n", user.Username)
	return 0
}

func (a *app) deleteUser(ctx context.Context, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "usage: delete <user>")
		return 2
	}

	user, err := a.resolveUser(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.stderr, "%v\n", err)
		return 1
	}
	if user == nil {
		fmt.Fprintf(a.stderr, "user %q not found\n", args[0])
		return 1
	}

	st, err := a.us.DeleteUser(ctx, userspace.ByID(user.ID))
	if err != nil {
		fmt.Fprintf(a.stderr, "delete user: %v\n", err)
		return 1
	}
	if st != userspace.StatusOK {
		fmt.Fprintf(a.stderr, "delete user: %s\n", st)
		return 1
	}
	fmt.Fprintf(a.stdout, "user %q deleted\n", user.Username)
	return 0
}

func (a *app) listUsers(ctx context.Context) int {
	users, err := a.us.AllUsers(ctx)
	if err != nil {
		fmt.Fprintf(a.stderr, "list users: %v\n", err)
		return 1
	}

	for i, u := range users {
		if i == 0 {
			fmt.Fprintf(a.stdout, "%5s|%-30s|%-30s\n", "uid", "username", "email")
			fmt.Fprintf(a.stdout, "%s+%s+%s\n",
				"=====",
				"==============================",
				"==============================")
		}
		fmt.Fprintf(a.stdout, "%5d|%-30s|%-30s\n", u.ID, u.Username, u.Email)
	}
	return 0
}

func (a *app) info(ctx context.Context, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(a.stderr, "usage: info <user>")
		return 2
	}

	user, err := a.resolveUser(ctx, args[0])
	if err != nil {
		fmt.Fprintf(a.stderr, "%v\n", err)
		return 1
	}
	if user == nil {
		fmt.Fprintf(a.stderr, "user %q not found\n", args[0])
		return 1
	}

	fmt.Fprintf(a.stdout, "userid:     %d\n", user.ID)
	fmt.Fprintf(a.stdout, "username:   %s\n", user.Username)
	fmt.Fprintf(a.stdout, "email:      %s\n", user.Email)
	fmt.Fprintf(a.stdout, "extra data: %v\n", user.ExtraData)
	return 0
}
