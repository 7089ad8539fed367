package forms

import "strings"

// Sanitizer normalizes a raw field value before validation.
type Sanitizer func(string) string

// SanitizeDefault strips angle brackets and trims surrounding whitespace.
func SanitizeDefault(value string) string {
	value = strings.ReplaceAll(value, "<", "")
	value = strings.ReplaceAll(value, ">", "")
	return strings.TrimSpace(value)
}

// SanitizeEmail lowercases and trims an address.
func SanitizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
