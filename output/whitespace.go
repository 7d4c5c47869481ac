package output

import (
	"regexp"
	"strings"

	"github.com/teranos/weft/event"
)

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	lineRuns      = regexp.MustCompile(`\n{2,}`)
)

// Whitespace buffers consecutive TEXT events into one logical run and,
// outside any preserve scope, collapses runs of two or more newlines to
// one and trims horizontal whitespace immediately preceding a newline.
//
// The preserve scope is entered on START of a tag in the preserve set or
// of an element carrying xml:space="preserve", and left on the matching
// END. Text inside a tag from the noescape set, or inside an explicit
// CDATA section, is passed through as literal markup so the terminal
// serializer does not re-escape it; the noescape set should only name
// elements that cannot contain child elements (script, style).
//
// Flushed text runs are emitted pre-escaped (literal), with non-literal
// pieces escaped during the merge.
func Whitespace(preserve map[event.QName]bool, noescape map[event.QName]bool) Filter {
	space := event.XMLNamespace.Name("space")
	return func(in event.Stream) event.Stream {
		preserveDepth := 0
		inNoescape := false
		var textbuf []string
		var queued *event.Event
		done := false

		flush := func(pos event.Pos) *event.Event {
			if len(textbuf) == 0 {
				return nil
			}
			text := strings.Join(textbuf, "")
			textbuf = textbuf[:0]
			if preserveDepth == 0 {
				text = trailingSpace.ReplaceAllString(text, "\n")
				text = lineRuns.ReplaceAllString(text, "\n")
			}
			ev := event.RawText(text, pos)
			return &ev
		}

		return event.StreamFunc(
			func() (event.Event, bool) {
				for {
					if queued != nil {
						ev := *queued
						queued = nil
						return ev, true
					}
					if done {
						return event.Event{}, false
					}
					ev, ok := in.Next()
					if !ok {
						done = true
						if text := flush(event.NoPos); text != nil {
							return *text, true
						}
						return event.Event{}, false
					}

					if ev.Kind == event.Text {
						piece := ev.Text
						if !ev.Literal && !inNoescape {
							piece = event.Escape(piece, false)
						}
						textbuf = append(textbuf, piece)
						continue
					}

					// Flush before updating state: buffered text belongs to
					// the scope that was open while it accumulated.
					text := flush(ev.Pos)

					switch ev.Kind {
					case event.Start:
						spaceAttr, _ := ev.Attrs.Get(space)
						if preserveDepth > 0 || preserve[ev.Tag] || spaceAttr == "preserve" {
							preserveDepth++
						}
						if !inNoescape && noescape[ev.Tag] {
							inNoescape = true
						}
					case event.End:
						inNoescape = false
						if preserveDepth > 0 {
							preserveDepth--
						}
					case event.StartCDATA:
						inNoescape = true
					case event.EndCDATA:
						inNoescape = false
					}

					if text != nil {
						e := ev
						queued = &e
						return *text, true
					}
					return ev, true
				}
			},
			in.Err,
		)
	}
}
