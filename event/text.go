package event

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var attrEscaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;",
)

// Escape replaces the characters &, < and > with their entity references.
// With quotes set, the double quote is additionally escaped as &#34;;
// that is only required for text placed inside attribute values.
func Escape(s string, quotes bool) string {
	if quotes {
		return attrEscaper.Replace(s)
	}
	return escaper.Replace(s)
}

// Unescape reverses Escape, turning &#34;, &gt;, &lt; and &amp; back into
// their literal characters.
func Unescape(s string) string {
	return strings.NewReplacer(
		"&#34;", `"`, "&gt;", ">", "&lt;", "<", "&amp;", "&",
	).Replace(s)
}

var tagPattern = regexp.MustCompile(`<[^>]*?>`)

// StripTags removes all XML/HTML tags from the text, leaving only
// character data.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// StripEntities replaces character and numeric entity references with the
// characters they denote. Unknown named entities are left untouched.
func StripEntities(s string) string {
	if !strings.ContainsRune(s, '&') {
		return s
	}
	return html.UnescapeString(s)
}

// Plaintext strips tags and decodes entities, yielding the displayable
// text of a literal-markup string.
func Plaintext(s string) string {
	return StripEntities(StripTags(s))
}
