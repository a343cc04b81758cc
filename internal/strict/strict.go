// Package strict decodes loosely typed configuration maps into structs,
// rejecting fields the struct does not declare.
package strict

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Decode copies src into dst, which must be a pointer to a struct with json
// tags. Keys in skip are ignored; this is how a "type" discriminator
// travels alongside the fields it selects.
func Decode(src map[string]any, dst any, skip ...string) error {
	if len(src) == 0 {
		return nil
	}
	filtered := make(map[string]any, len(src))
	for k, v := range src {
		filtered[k] = v
	}
	for _, k := range skip {
		delete(filtered, k)
	}
	raw, err := json.Marshal(filtered)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}
