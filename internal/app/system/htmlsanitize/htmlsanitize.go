// Package htmlsanitize cleans user-authored HTML before it is rendered.
//
// Blog articles arrive from the backend as rich HTML produced by an
// external editor; they must pass through Sanitize before a template may
// mark them as template.HTML.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy allows the formatting an article editor produces: headings,
// lists, tables, code blocks, links. Scripts, iframes, styles, and event
// handlers are stripped.
var policy = buildPolicy()

func buildPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowElements("u", "s", "sub", "sup", "mark")
	return p
}

// Sanitize returns the input with unsafe markup removed.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}

// SanitizeToHTML sanitizes and marks the result safe for templates.
// This is the only sanctioned way to produce template.HTML from
// user-authored content.
func SanitizeToHTML(html string) template.HTML {
	return template.HTML(policy.Sanitize(html))
}

var strict = bluemonday.StrictPolicy()

// StripTags removes all markup, leaving plain text. Used for excerpts.
func StripTags(html string) string {
	return strict.Sanitize(html)
}

// IsPlainText reports whether s carries no markup. A lone "<" or ">"
// (as in "5 < 10") does not count as markup.
func IsPlainText(s string) bool {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return true
	}
	return strings.IndexByte(s[open:], '>') < 0
}

// PlainTextToHTML escapes s and converts newlines to <br>, wrapped in a
// single paragraph. Empty input stays empty.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders content of unknown shape: plain text is
// escaped and paragraphed, anything with markup is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
