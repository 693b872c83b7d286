package server

import "strings"

// StringParam reads a string argument, trimming whitespace.
func StringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return def
}

// BoolParam reads a boolean argument. String values "true" and "false" are accepted.
func BoolParam(params map[string]interface{}, key string, def bool) bool {
	switch v := params[key].(type) {
	case bool:
		return v
	case string:
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return def
}
