// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims whitespace and lowercases an email address so that
// lookups and unique indexes behave case-insensitively.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding whitespace. Case is preserved for display;
// use text.Fold on the result for the _ci lookup field.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Name collapses interior runs of whitespace and trims the ends.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
