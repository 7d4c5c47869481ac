// Package input provides a minimal XML front-end producing markup event
// streams. It adapts encoding/xml tokens to events; it is a convenience
// for feeding the engine, not a validating parser.
package input

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/teranos/weft/errors"
	"github.com/teranos/weft/event"
)

// XML lazily parses r into an event stream. The source name is recorded
// in event positions for diagnostics. Parse failures surface through the
// stream's Err after Next returns false; the caller owns r.
func XML(r io.Reader, source string) event.Stream {
	dec := xml.NewDecoder(r)
	var pending []event.Event
	var nsScopes [][]string // prefixes declared per open element
	var err error
	pos := event.Pos{Source: source, Line: -1, Col: -1}

	pull := func() (event.Event, bool) {
		for {
			if len(pending) > 0 {
				ev := pending[0]
				pending = pending[1:]
				return ev, true
			}
			if err != nil {
				return event.Event{}, false
			}
			tok, terr := dec.Token()
			if terr != nil {
				if terr != io.EOF {
					err = errors.Wrapf(terr, "input: parsing %s", source)
				}
				return event.Event{}, false
			}

			switch t := tok.(type) {
			case xml.StartElement:
				var declared []string
				var attrs event.Attrs
				for _, attr := range t.Attr {
					switch {
					case attr.Name.Space == "xmlns":
						pending = append(pending, event.StartNamespace(attr.Name.Local, attr.Value, pos))
						declared = append(declared, attr.Name.Local)
					case attr.Name.Space == "" && attr.Name.Local == "xmlns":
						pending = append(pending, event.StartNamespace("", attr.Value, pos))
						declared = append(declared, "")
					default:
						attrs = append(attrs, event.Attr{
							Name:  event.QName{Namespace: attr.Name.Space, Local: attr.Name.Local},
							Value: attr.Value,
						})
					}
				}
				nsScopes = append(nsScopes, declared)
				pending = append(pending, event.StartElement(
					event.QName{Namespace: t.Name.Space, Local: t.Name.Local}, attrs, pos))

			case xml.EndElement:
				pending = append(pending, event.EndElement(
					event.QName{Namespace: t.Name.Space, Local: t.Name.Local}, pos))
				if n := len(nsScopes); n > 0 {
					for i := len(nsScopes[n-1]) - 1; i >= 0; i-- {
						pending = append(pending, event.EndNamespace(nsScopes[n-1][i], pos))
					}
					nsScopes = nsScopes[:n-1]
				}

			case xml.CharData:
				pending = append(pending, event.TextEvent(string(t), pos))

			case xml.Comment:
				pending = append(pending, event.CommentEvent(string(t), pos))

			case xml.ProcInst:
				// The XML declaration is not part of the event model.
				if t.Target != "xml" {
					pending = append(pending, event.ProcInst(t.Target, string(t.Inst), pos))
				}

			case xml.Directive:
				if dt, ok := parseDoctype(string(t)); ok {
					pending = append(pending, event.DoctypeEvent(dt, pos))
				}
			}
		}
	}

	return event.StreamFunc(pull, func() error { return err })
}

// XMLString parses a document held in memory.
func XMLString(doc, source string) event.Stream {
	return XML(strings.NewReader(doc), source)
}

// parseDoctype extracts (name, public id, system id) from a DOCTYPE
// directive body such as
// `DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://...">`.
func parseDoctype(directive string) (event.DocType, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(directive), "DOCTYPE")
	if !ok {
		return event.DocType{}, false
	}
	fields := splitQuoted(rest)
	if len(fields) == 0 {
		return event.DocType{}, false
	}
	dt := event.DocType{Name: fields[0]}
	switch {
	case len(fields) >= 3 && strings.EqualFold(fields[1], "PUBLIC"):
		dt.PublicID = fields[2]
		if len(fields) >= 4 {
			dt.SystemID = fields[3]
		}
	case len(fields) >= 3 && strings.EqualFold(fields[1], "SYSTEM"):
		dt.SystemID = fields[2]
	}
	return dt, true
}

// splitQuoted splits on whitespace, keeping single- or double-quoted
// sections together with the quotes removed.
func splitQuoted(s string) []string {
	var fields []string
	var cur strings.Builder
	var quote byte
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
				flush()
			} else {
				cur.WriteByte(c)
			}
		case c == '"' || c == '\'':
			flush()
			quote = c
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			flush()
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return fields
}
