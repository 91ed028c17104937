// internal/domain/models/displayname.go
package models

import "strings"

// DisplayNamePreference is the masking level an author picks for a post
// before it is sent. The choice is applied once, at creation time, and
// baked into the post's DisplayName snapshot.
type DisplayNamePreference string

const (
	DisplayFullName  DisplayNamePreference = "FullName"
	DisplayInitials  DisplayNamePreference = "Initials"
	DisplayAnonymous DisplayNamePreference = "Anonymous"
)

// ParseDisplayNamePreference returns the preference for a form value,
// defaulting to FullName for anything unrecognized.
func ParseDisplayNamePreference(s string) DisplayNamePreference {
	switch DisplayNamePreference(s) {
	case DisplayFullName, DisplayInitials, DisplayAnonymous:
		return DisplayNamePreference(s)
	}
	return DisplayFullName
}

// FormatDisplayName renders the byline for an identity under a masking
// preference:
//
//	FullName:  "John D., RN, TX"   (first name, last initial, title, state)
//	Initials:  "J.D., RN, TX"
//	Anonymous: "Anonymous"
//
// Title and state are omitted when the profile doesn't have them.
func FormatDisplayName(id Identity, pref DisplayNamePreference) string {
	if pref == DisplayAnonymous {
		return AnonymousDisplayName
	}

	parts := strings.Fields(id.Name)
	first, last := "", ""
	if len(parts) > 0 {
		first = parts[0]
	}
	if len(parts) > 1 {
		last = parts[len(parts)-1]
	}

	var b strings.Builder
	switch pref {
	case DisplayInitials:
		if first != "" {
			b.WriteString(first[:1])
			b.WriteString(".")
		}
		if last != "" {
			b.WriteString(last[:1])
			b.WriteString(".")
		}
	default: // FullName
		b.WriteString(first)
		if last != "" {
			b.WriteString(" ")
			b.WriteString(last[:1])
			b.WriteString(".")
		}
	}

	if id.Title != "" {
		b.WriteString(", ")
		b.WriteString(id.Title)
	}
	if id.State != "" {
		b.WriteString(", ")
		b.WriteString(id.State)
	}

	return strings.TrimPrefix(strings.TrimSpace(b.String()), ", ")
}

// ParseTags splits a free-text, comma-separated tag input into a list of
// trimmed, non-empty tags.
func ParseTags(raw string) []string {
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// JoinTags is the inverse of ParseTags for form round-trips.
func JoinTags(tags []string) string { return strings.Join(tags, ", ") }
