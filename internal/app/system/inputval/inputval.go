// internal/app/system/inputval/inputval.go
package inputval

import "strings"

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 8
	// MaxUsernameLength bounds usernames to keep indexes small.
	MaxUsernameLength = 150
)

// IsValidEmail reports whether s looks like a plain RFC 5322 addr-spec.
// Display-name forms ("Name <a@b>") are rejected, as are the dotted
// shapes the old weak regex let through.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t<>") {
		return false
	}
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if !validDotted(local) || !validDotted(domain) {
		return false
	}
	return true
}

// validDotted rejects leading/trailing dots and consecutive dots.
func validDotted(part string) bool {
	if part == "" || strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") {
		return false
	}
	return !strings.Contains(part, "..")
}

// IsValidUsername accepts non-empty names made of letters, digits and
// the @ . + - _ set.
func IsValidUsername(s string) bool {
	if s == "" || len(s) > MaxUsernameLength {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '@' || r == '.' || r == '+' || r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// IsValidPassword enforces the minimum length only; composition rules
// are left to the client.
func IsValidPassword(s string) bool {
	return len(s) >= MinPasswordLength
}
