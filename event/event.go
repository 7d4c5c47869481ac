// Package event defines the canonical unit of markup stream data: the
// Event, its closed set of kinds, qualified names, ordered attribute
// lists, and the pull-based Stream that every downstream stage consumes.
//
// A stream is a finite, single-pass, lazily produced sequence of events.
// Well-formedness invariant: every START has exactly one matching END at
// the same nesting depth, and every START_NS is closed by an END_NS at or
// above the scope depth where it was opened.
package event

import "fmt"

// Kind identifies what a stream event describes.
type Kind uint8

const (
	// KindInvalid is the zero value; no stage ever emits it.
	KindInvalid Kind = iota
	// Start opens an element. Payload: Tag, Attrs.
	Start
	// End closes an element. Payload: Tag.
	End
	// Text is literal character data. Payload: Text (Literal when the
	// text carries pre-rendered markup that must not be re-escaped).
	Text
	// StartNS opens a prefix→URI namespace binding. Payload: Prefix, URI.
	StartNS
	// EndNS closes the innermost binding of a prefix. Payload: Prefix.
	EndNS
	// StartCDATA opens an explicit CDATA section.
	StartCDATA
	// EndCDATA closes a CDATA section.
	EndCDATA
	// PI is a processing instruction. Payload: Target, Data.
	PI
	// Comment is a comment. Payload: Text.
	Comment
	// Doctype is a document type declaration. Payload: Doctype.
	Doctype
	// Empty is a contentless element, synthesized by the output stage's
	// EmptyTagFilter. Parsers never produce it; stages that do not handle
	// it explicitly may treat it as a Start immediately followed by End.
	Empty
)

var kindNames = [...]string{
	KindInvalid: "INVALID",
	Start:       "START",
	End:         "END",
	Text:        "TEXT",
	StartNS:     "START_NS",
	EndNS:       "END_NS",
	StartCDATA:  "START_CDATA",
	EndCDATA:    "END_CDATA",
	PI:          "PI",
	Comment:     "COMMENT",
	Doctype:     "DOCTYPE",
	Empty:       "EMPTY",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Pos locates an event in its original source. It is diagnostic only and
// never semantically required; the unknown position is (-1, -1).
type Pos struct {
	Source string
	Line   int
	Col    int
}

// NoPos is the position of synthesized events.
var NoPos = Pos{Line: -1, Col: -1}

func (p Pos) String() string {
	src := p.Source
	if src == "" {
		src = "<stream>"
	}
	return fmt.Sprintf("%s:%d:%d", src, p.Line, p.Col)
}

// Event is one structural unit of a markup stream. Which payload fields
// are meaningful depends on Kind; unused fields hold their zero value.
// Events are treated as values throughout the engine: stages never mutate
// a payload in place, they emit new events.
type Event struct {
	Kind Kind

	Tag     QName   // Start, Empty, End
	Attrs   Attrs   // Start, Empty
	Text    string  // Text, Comment
	Literal bool    // Text only: content is literal markup, do not escape
	Prefix  string  // StartNS, EndNS
	URI     string  // StartNS
	Target  string  // PI
	Data    string  // PI
	DocType DocType // Doctype

	Pos Pos
}

// DocType is the payload of a Doctype event.
type DocType struct {
	Name     string
	PublicID string
	SystemID string
}

// StartElement builds a Start event.
func StartElement(tag QName, attrs Attrs, pos Pos) Event {
	return Event{Kind: Start, Tag: tag, Attrs: attrs, Pos: pos}
}

// EndElement builds an End event.
func EndElement(tag QName, pos Pos) Event {
	return Event{Kind: End, Tag: tag, Pos: pos}
}

// TextEvent builds a Text event whose content will be escaped on output.
func TextEvent(text string, pos Pos) Event {
	return Event{Kind: Text, Text: text, Pos: pos}
}

// RawText builds a Text event whose content is literal markup and must
// pass through serializers unescaped.
func RawText(text string, pos Pos) Event {
	return Event{Kind: Text, Text: text, Literal: true, Pos: pos}
}

// CommentEvent builds a Comment event.
func CommentEvent(text string, pos Pos) Event {
	return Event{Kind: Comment, Text: text, Pos: pos}
}

// ProcInst builds a PI event.
func ProcInst(target, data string, pos Pos) Event {
	return Event{Kind: PI, Target: target, Data: data, Pos: pos}
}

// StartNamespace builds a StartNS event binding prefix to uri. An empty
// prefix binds the default namespace.
func StartNamespace(prefix, uri string, pos Pos) Event {
	return Event{Kind: StartNS, Prefix: prefix, URI: uri, Pos: pos}
}

// EndNamespace builds an EndNS event closing the innermost binding of
// prefix.
func EndNamespace(prefix string, pos Pos) Event {
	return Event{Kind: EndNS, Prefix: prefix, Pos: pos}
}

// StartCDATASection builds a StartCDATA event.
func StartCDATASection(pos Pos) Event {
	return Event{Kind: StartCDATA, Pos: pos}
}

// EndCDATASection builds an EndCDATA event.
func EndCDATASection(pos Pos) Event {
	return Event{Kind: EndCDATA, Pos: pos}
}

// DoctypeEvent builds a Doctype event.
func DoctypeEvent(dt DocType, pos Pos) Event {
	return Event{Kind: Doctype, DocType: dt, Pos: pos}
}

// EmptyElement builds an Empty pseudo-event. Only the output stage's
// EmptyTagFilter should produce these.
func EmptyElement(tag QName, attrs Attrs, pos Pos) Event {
	return Event{Kind: Empty, Tag: tag, Attrs: attrs, Pos: pos}
}

func (e Event) String() string {
	switch e.Kind {
	case Start, Empty:
		return fmt.Sprintf("%s(%s, %s)", e.Kind, e.Tag, e.Attrs)
	case End:
		return fmt.Sprintf("END(%s)", e.Tag)
	case Text, Comment:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Text)
	case StartNS:
		return fmt.Sprintf("START_NS(%q, %q)", e.Prefix, e.URI)
	case EndNS:
		return fmt.Sprintf("END_NS(%q)", e.Prefix)
	case PI:
		return fmt.Sprintf("PI(%s, %q)", e.Target, e.Data)
	case Doctype:
		return fmt.Sprintf("DOCTYPE(%s, %q, %q)", e.DocType.Name, e.DocType.PublicID, e.DocType.SystemID)
	default:
		return e.Kind.String()
	}
}
