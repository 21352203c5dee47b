package kdf

import (
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	t.Run("default params are valid", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, Default.Validate())
	})

	t.Run("rejects low iteration count", func(t *testing.T) {
		t.Parallel()

		p := Params{Iterations: 1000, SaltLength: 16, KeyLength: sha512.Size}
		assert.ErrorIs(t, p.Validate(), ErrWeakParams)
	})

	t.Run("rejects short salt", func(t *testing.T) {
		t.Parallel()

		p := Params{Iterations: MinIterations, SaltLength: 8, KeyLength: sha512.Size}
		assert.ErrorIs(t, p.Validate(), ErrWeakParams)
	})

	t.Run("rejects zero key length", func(t *testing.T) {
		t.Parallel()

		p := Params{Iterations: MinIterations, SaltLength: 16}
		assert.ErrorIs(t, p.Validate(), ErrWeakParams)
	})
}

func TestNewSalt(t *testing.T) {
	t.Parallel()

	s1, err := Default.NewSalt()
	require.NoError(t, err)
	require.Len(t, s1, Default.SaltLength)

	s2, err := Default.NewSalt()
	require.NoError(t, err)

	assert.NotEqual(t, s1, s2, "two salts should never collide")
}

func TestDeriveAndVerify(t *testing.T) {
	t.Parallel()

	// Smaller (invalid for production) iteration count keeps the test fast;
	// Derive and Verify do not consult Validate.
	p := Params{Iterations: 128, SaltLength: 16, KeyLength: sha512.Size}

	salt, err := p.NewSalt()
	require.NoError(t, err)

	hash := p.Derive("correct horse", salt)
	require.Len(t, hash, p.KeyLength)

	t.Run("derivation is deterministic", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, hash, p.Derive("correct horse", salt))
	})

	t.Run("matching password verifies", func(t *testing.T) {
		t.Parallel()

		assert.True(t, p.Verify("correct horse", salt, hash))
	})

	t.Run("wrong password fails", func(t *testing.T) {
		t.Parallel()

		assert.False(t, p.Verify("battery staple", salt, hash))
	})

	t.Run("wrong salt fails", func(t *testing.T) {
		t.Parallel()

		other, err := p.NewSalt()
		require.NoError(t, err)
		assert.False(t, p.Verify("correct horse", other, hash))
	})
}
