package kdf

import "errors"

var (
	ErrWeakParams = errors.New("kdf parameters below minimum strength")
)
