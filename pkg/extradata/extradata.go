package extradata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode serializes v into a self-describing blob. Only the minimal value
// set is accepted: nil, bool, string, any Go integer or float, json.Number,
// []any and map[string]any, nested arbitrarily.
func Encode(v any) ([]byte, error) {
	if err := checkValue(v); err != nil {
		return nil, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode extra data: %w", err)
	}
	return data, nil
}

// Decode parses a blob produced by Encode. Numbers come back as json.Number.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBlob, err)
	}
	// A valid blob is exactly one JSON value.
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedBlob)
	}
	return v, nil
}

func checkValue(v any) error {
	switch val := v.(type) {
	case nil, bool, string, json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return nil
	case []any:
		for _, item := range val {
			if err := checkValue(item); err != nil {
				return err
			}
		}
		return nil
	case map[string]any:
		for _, item := range val {
			if err := checkValue(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
}
