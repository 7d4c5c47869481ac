package output

import (
	"strings"

	"github.com/teranos/weft/event"
)

// voidElements are the element kinds that cannot have content and never
// receive a closing tag in HTML.
var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "br": true, "col": true,
	"frame": true, "hr": true, "img": true, "input": true, "isindex": true,
	"link": true, "meta": true, "param": true,
}

// booleanAttrs are attributes whose presence alone carries the value.
var booleanAttrs = map[string]bool{
	"selected": true, "checked": true, "compact": true, "declare": true,
	"defer": true, "disabled": true, "ismap": true, "multiple": true,
	"nohref": true, "noresize": true, "noshade": true, "nowrap": true,
}

// preserveElements keep their whitespace verbatim in (X)HTML output.
var preserveElements = map[event.QName]bool{
	event.Name("pre"):               true,
	XHTMLNamespace.Name("pre"):      true,
	event.Name("textarea"):          true,
	XHTMLNamespace.Name("textarea"): true,
}

// XHTMLSerializer produces XHTML text: XML syntax with HTML
// compatibility rules. A contentless element self-closes only when its
// tag is a known void element, and boolean attributes render in expanded
// attr="attr" form.
//
// Serializing the fragment div(a(href="foo"), br, hr(noshade="True"))
// yields `<div><a href="foo"></a><br /><hr noshade="noshade" /></div>`.
type XHTMLSerializer struct {
	preamble []event.Event
	filters  []Filter
}

// NewXHTML creates an XHTML serializer with the given options. The XHTML
// namespace is always flattened to the unprefixed form.
func NewXHTML(opts Options) *XHTMLSerializer {
	s := &XHTMLSerializer{}
	if opts.Doctype != nil {
		s.preamble = append(s.preamble, event.DoctypeEvent(*opts.Doctype, event.NoPos))
	}
	s.filters = append(s.filters, EmptyTag())
	if opts.StripWhitespace {
		s.filters = append(s.filters, Whitespace(preserveElements, nil))
	}
	prefixes := map[string]string{string(XHTMLNamespace): ""}
	for uri, prefix := range opts.NamespacePrefixes {
		prefixes[uri] = prefix
	}
	s.filters = append(s.filters, NamespaceFlattener(prefixes))
	return s
}

// Serialize implements Serializer.
func (s *XHTMLSerializer) Serialize(in event.Stream) *Fragments {
	stream := applyFilters(in, s.preamble, s.filters)
	haveDoctype := false
	inCDATA := false
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
						value := attr.Value
						if booleanAttrs[attr.Name.Local] {
							value = attr.Name.Local
						}
						b.WriteByte(' ')
						b.WriteString(attr.Name.Local)
						b.WriteString(`="`)
						b.WriteString(event.Escape(value, true))
						b.WriteByte('"')
					}
					if ev.Kind == event.Empty {
						if voidElements[ev.Tag.Local] {
							b.WriteString(" />")
						} else {
							b.WriteString("></" + ev.Tag.Local + ">")
						}
					} else {
						b.WriteByte('>')
					}
					return b.String(), true
				case event.End:
					return "</" + ev.Tag.Local + ">", true
				case event.Text:
					if inCDATA || ev.Literal {
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
				case event.StartCDATA:
					inCDATA = true
					return "<![CDATA[", true
				case event.EndCDATA:
					inCDATA = false
					return "]]>", true
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
