package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

const maxPasswordTries = 3

var errTooManyRetries = errors.New("too many retries")

// enterPassword prompts twice for a password until both entries match,
// giving up after maxPasswordTries attempts.
func enterPassword(w io.Writer, who string) (string, error) {
	for range maxPasswordTries {
		fmt.Fprintf(w, "Enter password for %s: ", who)
		first, err := readPassword(w)
		if err != nil {
			return "", err
		}

		fmt.Fprintf(w, "Repeat password for %s: ", who)
		second, err := readPassword(w)
		if err != nil {
			return "", err
		}

		if first == second {
			return first, nil
		}
		fmt.Fprintln(w, "Passwords don't match.")
	}
	return "", errTooManyRetries
}

func readPassword(w io.Writer) (string, error) {
	pwd, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pwd), nil
}
