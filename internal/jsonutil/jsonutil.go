// Package jsonutil provides shared JSON helpers that wrap errors with the
// caller's context.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalStrict unmarshals JSON data into v, rejecting unknown fields and
// trailing data. Errors are wrapped with the provided context message.
func UnmarshalStrict(data []byte, v interface{}, context string) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%s: %w", context, err)
	}
	if dec.More() {
		return fmt.Errorf("%s: unexpected data after JSON value", context)
	}
	return nil
}

// MarshalIndent renders v as two-space indented JSON with a trailing newline.
// Errors are wrapped with the provided context message.
func MarshalIndent(v interface{}, context string) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", context, err)
	}
	return append(b, '\n'), nil
}
