package sanitizer

import "strings"

// NormalizeEmail lowercases an email address and trims surrounding
// whitespace. Used before every account lookup so the email unique key is
// case-insensitive in practice, regardless of what the provider returned.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CollapseWhitespace trims a string and collapses internal whitespace runs
// to single spaces. Display names from providers occasionally arrive with
// padding or doubled spaces.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
