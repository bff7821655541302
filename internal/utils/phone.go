package utils

import "regexp"

// Very basic E.164 validation: starts with + and 8-15 digits total
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// IsValidPhone reports whether phone is a syntactically valid E.164 number.
// This is a coarse format check only - no locale or carrier lookup.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
