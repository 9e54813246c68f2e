// Package config provides configuration decoding, validation and typed access
// to keyword maps such as sensor configurations and episode info.
package config

// Config represents keyword configuration as a key-value map.
type Config = map[string]any

// GetFloat extracts a float64 from config, handling float64, int, and int64.
func GetFloat(config Config, key string) (float64, bool) {
	v, ok := config[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
