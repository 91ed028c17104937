package models

import (
	"reflect"
	"testing"
)

func TestFormatDisplayName(t *testing.T) {
	jane := Identity{Name: "Jane Doe", Title: "RN", State: "TX"}
	solo := Identity{Name: "Cher"}

	tests := []struct {
		name string
		id   Identity
		pref DisplayNamePreference
		want string
	}{
		{"full name with title and state", jane, DisplayFullName, "Jane D., RN, TX"},
		{"initials with title and state", jane, DisplayInitials, "J.D., RN, TX"},
		{"anonymous masks everything", jane, DisplayAnonymous, "Anonymous"},
		{"single-word name full", solo, DisplayFullName, "Cher"},
		{"single-word name initials", solo, DisplayInitials, "C."},
		{"no title", Identity{Name: "Jane Doe", State: "TX"}, DisplayFullName, "Jane D., TX"},
		{"empty name anonymous still works", Identity{}, DisplayAnonymous, "Anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDisplayName(tt.id, tt.pref); got != tt.want {
				t.Errorf("FormatDisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDisplayName_AnonymousRegardlessOfProfile(t *testing.T) {
	// The author identity must never leak through an anonymous byline.
	ids := []Identity{
		{Name: "Alice Smith", Title: "RN", State: "CA"},
		{Name: "Bob"},
		{Name: "Very Long Name With Parts", Title: "NP"},
	}
	for _, id := range ids {
		if got := FormatDisplayName(id, DisplayAnonymous); got != AnonymousDisplayName {
			t.Errorf("FormatDisplayName(%q, Anonymous) = %q, want %q", id.Name, got, AnonymousDisplayName)
		}
	}
}

func TestParseDisplayNamePreference(t *testing.T) {
	if got := ParseDisplayNamePreference("Anonymous"); got != DisplayAnonymous {
		t.Errorf("got %q, want Anonymous", got)
	}
	if got := ParseDisplayNamePreference("garbage"); got != DisplayFullName {
		t.Errorf("unknown preference: got %q, want FullName fallback", got)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"cardiology, icu , night-shift", []string{"cardiology", "icu", "night-shift"}},
		{" , ,", nil},
		{"", nil},
		{"solo", []string{"solo"}},
	}
	for _, tt := range tests {
		if got := ParseTags(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPostReactionHelpers(t *testing.T) {
	p := Post{
		Reactions: []Reaction{
			{ID: "r1", UserID: "u1", Type: ReactionHeart},
			{ID: "r2", UserID: "u2", Type: ReactionHeart},
			{ID: "r3", UserID: "u1", Type: ReactionSupport},
		},
	}
	if got := p.ReactionCount(ReactionHeart); got != 2 {
		t.Errorf("ReactionCount(HEART) = %d, want 2", got)
	}
	if !p.HasReacted("u1", ReactionSupport) {
		t.Error("HasReacted(u1, SUPPORT) = false, want true")
	}
	if p.HasReacted("u2", ReactionSupport) {
		t.Error("HasReacted(u2, SUPPORT) = true, want false")
	}
}

func TestPostShownName(t *testing.T) {
	p := Post{Author: Identity{Name: "Jane Doe"}, DisplayName: AnonymousDisplayName}
	if !p.IsAnonymous() {
		t.Error("IsAnonymous() = false, want true")
	}
	if got := p.ShownName(); got != AnonymousDisplayName {
		t.Errorf("ShownName() = %q, want %q", got, AnonymousDisplayName)
	}
	// Author identity is still carried for authorization checks.
	if p.Author.Name != "Jane Doe" {
		t.Error("author identity lost from anonymous post")
	}
}
