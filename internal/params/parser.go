package params

import (
	"fmt"
	"strings"
)

// ParseKeyValuePairs converts a slice of "key=value" strings into a map.
// Keys are trimmed; values are kept as given.
//
// Example:
//
//	vars, err := ParseKeyValuePairs([]string{"product=Widget", "version=2.0"})
//	// Returns: map[string]string{"product": "Widget", "version": "2.0"}
func ParseKeyValuePairs(pairs []string) (map[string]string, error) {
	result := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("variable %q is not in key=value format (example: --vartext product=Widget)", pair)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("variable has empty key: %q", pair)
		}

		result[key] = value
	}

	return result, nil
}

// Merge combines variable maps; later maps override earlier ones.
func Merge(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
