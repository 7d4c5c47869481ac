package output

import (
	"strings"

	"github.com/teranos/weft/event"
)

// noescapeElements cannot contain child elements; their text content is
// emitted without re-escaping in HTML output.
var noescapeElements = map[event.QName]bool{
	event.Name("script"):          true,
	XHTMLNamespace.Name("script"): true,
	event.Name("style"):           true,
	XHTMLNamespace.Name("style"):  true,
}

// HTMLSerializer produces HTML text: tags never self-close, a
// contentless void element renders as its open tag only, boolean
// attributes render bare when truthy and are omitted when empty, and
// script/style content is not re-escaped.
//
// Serializing the fragment div(a(href="foo"), br, hr(noshade="True"))
// yields `<div><a href="foo"></a><br><hr noshade></div>`.
type HTMLSerializer struct {
	preamble []event.Event
	filters  []Filter
}

// NewHTML creates an HTML serializer with the given options. Elements
// outside the XHTML (or empty) namespace are handled by the namespace
// stripper rather than flattened.
func NewHTML(opts Options) *HTMLSerializer {
	s := &HTMLSerializer{}
	if opts.Doctype != nil {
		s.preamble = append(s.preamble, event.DoctypeEvent(*opts.Doctype, event.NoPos))
	}
	s.filters = append(s.filters, EmptyTag())
	if opts.StripWhitespace {
		s.filters = append(s.filters, Whitespace(preserveElements, noescapeElements))
	}
	s.filters = append(s.filters, NamespaceStripper(XHTMLNamespace))
	return s
}

// Serialize implements Serializer.
func (s *HTMLSerializer) Serialize(in event.Stream) *Fragments {
	stream := applyFilters(in, s.preamble, s.filters)
	haveDoctype := false
	noescape := false
	return &Fragments{
		next: func() (string, bool) {
			for {
				ev, ok := stream.Next()
				if !ok {
					return "", false
				}
				switch ev.Kind {
				case event.Start, event.Empty:
					var b strings.Builder
					b.WriteByte('<')
					b.WriteString(ev.Tag.Local)
					for _, attr := range ev.Attrs {
						if booleanAttrs[attr.Name.Local] {
							if attr.Value != "" {
								b.WriteByte(' ')
								b.WriteString(attr.Name.Local)
							}
							continue
						}
						b.WriteByte(' ')
						b.WriteString(attr.Name.Local)
						b.WriteString(`="`)
						b.WriteString(event.Escape(attr.Value, true))
						b.WriteByte('"')
					}
					b.WriteByte('>')
					if ev.Kind == event.Empty && !voidElements[ev.Tag.Local] {
						b.WriteString("</" + ev.Tag.Local + ">")
					}
					if ev.Kind == event.Start && noescapeElements[ev.Tag] {
						noescape = true
					}
					return b.String(), true
				case event.End:
					noescape = false
					return "</" + ev.Tag.Local + ">", true
				case event.Text:
					if noescape || ev.Literal {
						return ev.Text, true
					}
					return event.Escape(ev.Text, false), true
				case event.Comment:
					return "<!--" + ev.Text + "-->", true
				case event.Doctype:
					if haveDoctype {
						continue
					}
					haveDoctype = true
					return renderDoctype(ev.DocType), true
				case event.PI:
					return "<?" + ev.Target + " " + ev.Data + "?>", true
				default:
					continue
				}
			}
		},
		err: stream.Err,
	}
}
