package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// ValidateEmail reports whether the address is plausibly formed.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// KeyConstraint returns the first of possibleKeys mentioned in a database
// constraint detail string (e.g. `Key (email)=(a@b.c) already exists.`), or
// "" when none matches. The key-detection order is the caller's slice order.
func KeyConstraint(detail string, possibleKeys []string) string {
	for _, key := range possibleKeys {
		if strings.Contains(detail, key) {
			return key
		}
	}
	return ""
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
