// internal/app/system/normalize/normalize.go

// Package normalize canonicalizes user-supplied identity strings before
// they reach the backend API. Emails are compared case-insensitively by
// the backend, so the same canonical form must be sent from every entry
// point (login, signup, invitations).
package normalize

import "strings"

// Email trims whitespace and lowercases an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims whitespace and collapses interior runs of spaces to one.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
