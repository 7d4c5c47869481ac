// Package output serializes markup event streams into literal text in
// one of several dialects: strict XML, XHTML, HTML and plain text.
//
// Serialization is staged: the stream first passes through filters
// (empty-tag coalescing, whitespace collapsing, namespace flattening or
// stripping) and the terminal serializer then renders the filtered
// events as text fragments.
package output

import (
	"strings"

	"github.com/teranos/weft/event"
)

// Filter is a serialization stage: a pure function from one lazy event
// stream to another.
type Filter func(event.Stream) event.Stream

// Options configures a serializer.
type Options struct {
	// Doctype, when set, is emitted as a DOCTYPE declaration ahead of the
	// stream.
	Doctype *event.DocType
	// StripWhitespace inserts the whitespace collapsing filter into the
	// serialization chain.
	StripWhitespace bool
	// NamespacePrefixes maps namespace URIs to preferred prefixes for the
	// namespace flattener.
	NamespacePrefixes map[string]string
}

// Serializer renders a filtered event stream as text fragments.
type Serializer interface {
	Serialize(in event.Stream) *Fragments
}

// Fragments is the lazily produced text output of a serializer. The
// fragment boundaries carry no meaning; callers concatenate them. After
// Next returns false, Err reports whether the underlying stream failed.
type Fragments struct {
	next func() (string, bool)
	err  func() error
}

// Next returns the next text fragment.
func (f *Fragments) Next() (string, bool) { return f.next() }

// Err returns the terminal error of the underlying stream, if any.
func (f *Fragments) Err() error { return f.err() }

// Render runs the serializer over in and concatenates the fragments.
func Render(s Serializer, in event.Stream) (string, error) {
	frags := s.Serialize(in)
	var b strings.Builder
	for {
		frag, ok := frags.Next()
		if !ok {
			return b.String(), frags.Err()
		}
		b.WriteString(frag)
	}
}

// applyFilters prepends the preamble and runs the stream through each
// filter in order.
func applyFilters(in event.Stream, preamble []event.Event, filters []Filter) event.Stream {
	if len(preamble) > 0 {
		in = event.Concat(event.FromSlice(preamble), in)
	}
	for _, f := range filters {
		in = f(in)
	}
	return in
}

// renderDoctype renders a DOCTYPE declaration: PUBLIC when a public id is
// present, SYSTEM when only a system id is, bare otherwise.
func renderDoctype(dt event.DocType) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE ")
	b.WriteString(dt.Name)
	if dt.PublicID != "" {
		b.WriteString(` PUBLIC "`)
		b.WriteString(dt.PublicID)
		b.WriteString(`"`)
	} else if dt.SystemID != "" {
		b.WriteString(" SYSTEM")
	}
	if dt.SystemID != "" {
		b.WriteString(` "`)
		b.WriteString(dt.SystemID)
		b.WriteString(`"`)
	}
	b.WriteString(">\n")
	return b.String()
}

// Commonly used DOCTYPE declarations.
var (
	DocTypeHTMLStrict = event.DocType{
		Name:     "html",
		PublicID: "-//W3C//DTD HTML 4.01//EN",
		SystemID: "http://www.w3.org/TR/html4/strict.dtd",
	}
	DocTypeHTMLTransitional = event.DocType{
		Name:     "html",
		PublicID: "-//W3C//DTD HTML 4.01 Transitional//EN",
		SystemID: "http://www.w3.org/TR/html4/loose.dtd",
	}
	DocTypeHTML = DocTypeHTMLStrict

	DocTypeXHTMLStrict = event.DocType{
		Name:     "html",
		PublicID: "-//W3C//DTD XHTML 1.0 Strict//EN",
		SystemID: "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd",
	}
	DocTypeXHTMLTransitional = event.DocType{
		Name:     "html",
		PublicID: "-//W3C//DTD XHTML 1.0 Transitional//EN",
		SystemID: "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd",
	}
	DocTypeXHTML = DocTypeXHTMLStrict
)

// XHTMLNamespace is the XHTML namespace URI.
const XHTMLNamespace = event.Namespace("http://www.w3.org/1999/xhtml")
