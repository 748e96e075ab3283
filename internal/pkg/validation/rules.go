package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100
)

var emailRegexp = regexp.MustCompile(EmailPattern)

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return emailRegexp.MatchString(value)
}

// IsBlank reports whether the value is empty or whitespace only.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
