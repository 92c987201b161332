package render

import (
	"encoding/json"
	"fmt"
)

// ToJSON normalizes v and serializes it as indented JSON. It is total:
// if the encoder rejects a residual leaf, the value's string
// representation is returned instead of an error.
func ToJSON(v any) string {
	normalized := Normalize(v)
	data, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Sprint(normalized)
	}
	return string(data)
}
