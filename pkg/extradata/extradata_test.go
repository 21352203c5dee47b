package extradata

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   any
		want any
	}{
		{"null", nil, nil},
		{"bool", true, true},
		{"string", "hello", "hello"},
		{"integer", 543, json.Number("543")},
		{"float", 2.5, json.Number("2.5")},
		{"list", []any{"a", 1, false}, []any{"a", json.Number("1"), false}},
		{
			"map",
			map[string]any{"k": 1},
			map[string]any{"k": json.Number("1")},
		},
		{
			"nested",
			map[string]any{
				"phone":     "555-0100",
				"reminders": []any{"pet name", nil},
				"attempts":  map[string]any{"max": 3},
			},
			map[string]any{
				"phone":     "555-0100",
				"reminders": []any{"pet name", nil},
				"attempts":  map[string]any{"max": json.Number("3")},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			blob, err := Encode(tc.in)
			require.NoError(t, err)

			got, err := Decode(blob)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNumberFidelity(t *testing.T) {
	t.Parallel()

	// Large integers must not be squashed through float64.
	blob, err := Encode(int64(9007199254740993))
	require.NoError(t, err)

	got, err := Decode(blob)
	require.NoError(t, err)

	n, ok := got.(json.Number)
	require.True(t, ok)

	i, err := n.Int64()
	require.NoError(t, err)
	assert.Equal(t, int64(9007199254740993), i)
}

func TestEncodeRejectsUnsupportedTypes(t *testing.T) {
	t.Parallel()

	t.Run("struct value", func(t *testing.T) {
		t.Parallel()

		type payload struct{ X int }
		_, err := Encode(payload{X: 1})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("nested channel", func(t *testing.T) {
		t.Parallel()

		_, err := Encode(map[string]any{"ch": make(chan int)})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("typed slice", func(t *testing.T) {
		t.Parallel()

		// Lists must be []any so decoded values mirror encoded shapes.
		_, err := Encode([]string{"a"})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestDecodeRejectsMalformedBlobs(t *testing.T) {
	t.Parallel()

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := Decode([]byte("{"))
		assert.ErrorIs(t, err, ErrMalformedBlob)
	})

	t.Run("trailing data", func(t *testing.T) {
		t.Parallel()

		_, err := Decode([]byte("1 2"))
		assert.ErrorIs(t, err, ErrMalformedBlob)
	})

	t.Run("empty blob", func(t *testing.T) {
		t.Parallel()

		_, err := Decode(nil)
		assert.ErrorIs(t, err, ErrMalformedBlob)
	})
}
