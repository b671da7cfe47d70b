// Package instance identifies the running process in log output when
// several devserver copies share one log stream.
package instance

import "os"

// GetID returns the configured instance identifier or "local".
func GetID() string {
	if id := os.Getenv("STOCKFLOW_INSTANCE_ID"); id != "" {
		return id
	}
	return "local"
}
