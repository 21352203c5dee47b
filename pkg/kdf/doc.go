// Package kdf derives verifiable password credentials using
// PBKDF2-HMAC-SHA512.
//
// The derivation is deliberately slow and salted so that a leaked credential
// table resists offline guessing. Parameters (iteration count, salt and key
// lengths) are fixed per store and treated as a versionable property of the
// stored credentials: changing them only affects hashes written afterward.
//
// # Usage
//
//	import "github.com/userspacekit/userspace/pkg/kdf"
//
//	p := kdf.Default
//	salt, err := p.NewSalt()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hash := p.Derive("s3cret", salt)
//
//	// later
//	if p.Verify("s3cret", salt, hash) {
//	    // credential matches
//	}
//
// Verify compares in constant time via crypto/subtle.
package kdf
