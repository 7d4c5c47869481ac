// Package transform applies composable transformations to selected
// regions of a markup event stream.
//
// A Selector marks subsets of an event stream (see Mark), and combinators
// such as Remove, Wrap or Prepend act on the marked regions. Stages are
// chained by a Transformer and run in a single consumer-driven pass; only
// Copy and Cut materialize the stream.
package transform

import (
	"fmt"

	"github.com/teranos/weft/event"
)

// Mark denotes the selection status of an event within a transformation
// pass. On a selected element subtree the sequence of marks is exactly
// MarkEnter, MarkInside*, MarkExit; a selected non-element event carries
// MarkOutside; everything unselected carries MarkNone.
type Mark uint8

const (
	// MarkNone tags events outside any selection.
	MarkNone Mark = iota
	// MarkEnter tags the START event of a selected element.
	MarkEnter
	// MarkInside tags events within a selected element's subtree.
	MarkInside
	// MarkExit tags the END event of a selected element.
	MarkExit
	// MarkOutside tags a selected event that is not an element, such as
	// matched text.
	MarkOutside
)

var markNames = [...]string{
	MarkNone:    "NONE",
	MarkEnter:   "ENTER",
	MarkInside:  "INSIDE",
	MarkExit:    "EXIT",
	MarkOutside: "OUTSIDE",
}

func (m Mark) String() string {
	if int(m) < len(markNames) {
		return markNames[m]
	}
	return fmt.Sprintf("Mark(%d)", uint8(m))
}

// Selected reports whether the mark denotes any kind of selection.
func (m Mark) Selected() bool { return m != MarkNone }

// MarkedEvent is the unit flowing through transformation stages.
type MarkedEvent struct {
	Mark  Mark
	Event event.Event
}

func (me MarkedEvent) String() string {
	return fmt.Sprintf("(%s, %s)", me.Mark, me.Event)
}
