package db

import "strings"

// IsUniqueViolation reports whether the error is a unique constraint
// failure. Postgres and sqlite word it differently; when constraintName is
// provided the helper looks for that text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
