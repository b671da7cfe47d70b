// Package env reads the few environment switches that live outside the
// structured configuration, such as LOG_FORMAT and the seed admin password.
package env

import (
	"os"
	"strings"
)

// Get returns the named variable, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
