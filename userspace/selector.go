package userspace

import "fmt"

type selectorKind int

const (
	selNone selectorKind = iota
	selUsername
	selEmail
	selID
)

// Selector names exactly one identity lookup key. The zero value selects
// nothing and is rejected with ErrBadCall wherever a Selector is required.
type Selector struct {
	kind selectorKind
	str  string
	id   int64
}

// ByUsername selects an identity by its unique username.
func ByUsername(username string) Selector {
	return Selector{kind: selUsername, str: username}
}

// ByEmail selects an identity by its unique email address.
func ByEmail(email string) Selector {
	return Selector{kind: selEmail, str: email}
}

// ByID selects an identity by its store-assigned userid.
func ByID(userid int64) Selector {
	return Selector{kind: selID, id: userid}
}

// column maps the selector onto its identity column and bound value.
func (s Selector) column() (string, any, error) {
	switch s.kind {
	case selUsername:
		return "username", s.str, nil
	case selEmail:
		return "email", s.str, nil
	case selID:
		return "userid", s.id, nil
	default:
		return "", nil, fmt.Errorf("%w: a selector is required", ErrBadCall)
	}
}
