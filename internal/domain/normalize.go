package domain

import "strings"

// NormalizeName trims leading/trailing whitespace and collapses internal
// whitespace runs. Used for titles and activity names.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
