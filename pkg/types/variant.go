package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Variant is the opaque option set attached to a cart line (size, color,
// fabric, ...). Two variants are the same line identity when their key/value
// pairs match regardless of map order.
type Variant map[string]string

// Canonical returns a stable string form used for line-item identity: keys
// sorted, pairs joined as k=v with unit separators.
func (v Variant) Canonical() string {
	if len(v) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+v[k])
	}
	return strings.Join(pairs, "\x1f")
}

// Label returns a human-readable form for receipts and line names, e.g.
// "color: navy, size: m".
func (v Variant) Label() string {
	if len(v) == 0 {
		return ""
	}
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+": "+v[k])
	}
	return strings.Join(pairs, ", ")
}

// Equal reports structural equality independent of key order.
func (v Variant) Equal(other Variant) bool {
	if len(v) != len(other) {
		return false
	}
	for k, val := range v {
		if otherVal, ok := other[k]; !ok || otherVal != val {
			return false
		}
	}
	return true
}

// Value serializes the variant to JSON for jsonb columns.
func (v Variant) Value() (driver.Value, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}

// Scan decodes jsonb into the variant map.
func (v *Variant) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded Variant
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*v = decoded
	return nil
}

func asJSON(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("unsupported jsonb scan type %T", value)
	}
}
