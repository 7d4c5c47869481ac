package transform

import (
	"github.com/teranos/weft/errors"
	"github.com/teranos/weft/event"
)

// ErrStreamConsistency reports a malformed input stream: a matched
// subtree's START/END nesting could not be balanced. It is fatal and
// propagates to the pipeline caller.
var ErrStreamConsistency = errors.New("markup stream is not well-formed: unbalanced element nesting in selected subtree")

// Select builds the selection stage: it asks sel about every incoming
// event and marks matched regions.
//
// A matched START opens a subtree walk: the START is emitted ENTER, every
// nested event INSIDE, and the terminating END at the same depth EXIT.
// While walking, every nested event is still passed to sel.Test with
// updateOnly set so positional predicates stay correct. A matched
// non-START event is emitted OUTSIDE. A substitute verdict is emitted
// ENTER with no further pulling. Events the selector does not match keep
// whatever mark they already carry from earlier stages, so re-selecting
// an already-marked stream only ever adds marks (see Transformer.Select).
func Select(sel Selector) Stage {
	return func(in *Cursor) *Cursor {
		namespaces := make(map[string]string)
		variables := make(map[string]any)
		depth := 0 // >0 while walking a matched subtree

		return in.Derive(func() (MarkedEvent, bool) {
			me, ok := in.Next()
			if !ok {
				if depth > 0 {
					in.Fail(ErrStreamConsistency)
				}
				return MarkedEvent{}, false
			}

			if depth > 0 {
				switch me.Event.Kind {
				case event.Start:
					depth++
				case event.End:
					depth--
				}
				sel.Test(me.Event, namespaces, variables, true)
				if depth == 0 {
					return MarkedEvent{Mark: MarkExit, Event: me.Event}, true
				}
				return MarkedEvent{Mark: MarkInside, Event: me.Event}, true
			}

			res := sel.Test(me.Event, namespaces, variables, false)
			switch {
			case res.Substitute != nil:
				return MarkedEvent{Mark: MarkEnter, Event: *res.Substitute}, true
			case res.Matched && me.Event.Kind == event.Start:
				depth = 1
				return MarkedEvent{Mark: MarkEnter, Event: me.Event}, true
			case res.Matched:
				return MarkedEvent{Mark: MarkOutside, Event: me.Event}, true
			default:
				return me, true
			}
		})
	}
}
