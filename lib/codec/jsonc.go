// Copyright 2026 The Hex Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"
)

// UnmarshalJSONC decodes JSON that may contain // and /* */ comments
// and trailing commas. Unknown struct fields are an error.
func UnmarshalJSONC(data []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("codec: decoding JSONC: %w", err)
	}
	if decoder.More() {
		return errors.New("codec: decoding JSONC: trailing data after the first value")
	}
	return nil
}

// MarshalJSON encodes v as indented JSON for display.
func MarshalJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
