package output

import (
	"strings"

	"github.com/teranos/weft/event"
)

// XMLSerializer produces strict XML text from an event stream.
//
// Serializing the fragment div(a(href="foo"), br, hr(noshade="True"))
// yields `<div><a href="foo"/><br/><hr noshade="True"/></div>`.
type XMLSerializer struct {
	preamble []event.Event
	filters  []Filter
}

// NewXML creates an XML serializer with the given options.
func NewXML(opts Options) *XMLSerializer {
	s := &XMLSerializer{}
	if opts.Doctype != nil {
		s.preamble = append(s.preamble, event.DoctypeEvent(*opts.Doctype, event.NoPos))
	}
	s.filters = append(s.filters, EmptyTag())
	if opts.StripWhitespace {
		s.filters = append(s.filters, Whitespace(nil, nil))
	}
	s.filters = append(s.filters, NamespaceFlattener(opts.NamespacePrefixes))
	return s
}

// Serialize implements Serializer.
func (s *XMLSerializer) Serialize(in event.Stream) *Fragments {
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
						b.WriteByte(' ')
						b.WriteString(attr.Name.Local)
						b.WriteString(`="`)
						b.WriteString(event.Escape(attr.Value, true))
						b.WriteByte('"')
					}
					if ev.Kind == event.Empty {
						b.WriteString("/>")
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
					// Any DOCTYPE after the first is ignored, not an error.
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
