package scenario

import (
	"fmt"
	"math"
	"strings"
)

func requiredString(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return strings.TrimSpace(value)
}

func optionalString(args map[string]any, key, fallback string) string {
	value, ok := args[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

// readInt accepts Lua integers and whole floats.
func readInt(args map[string]any, key string) (int, bool) {
	return toInt(args[key])
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if math.Mod(v, 1) != 0 {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

func optionalInt(args map[string]any, key string, fallback int) int {
	if value, ok := readInt(args, key); ok {
		return value
	}
	return fallback
}

func readIntSlice(args map[string]any, key string) ([]int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a list of integers", key)
	}
	out := make([]int, 0, len(items))
	for i, item := range items {
		value, ok := toInt(item)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be an integer", key, i+1)
		}
		out = append(out, value)
	}
	return out, nil
}

// readAmount returns the amount argument every numeric step carries.
func readAmount(args map[string]any) (int, error) {
	value, ok := readInt(args, "amount")
	if !ok {
		return 0, fmt.Errorf("amount must be an integer")
	}
	return value, nil
}
