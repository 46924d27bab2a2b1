// Package env reads raw process environment values for the few knobs needed
// before the typed config has been loaded.
package env

import "os"

// Get reads key from the environment, falling back when it is unset or blank.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	return val
}
