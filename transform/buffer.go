package transform

import "github.com/teranos/weft/event"

// Buffer is a resettable, appendable materialization of events, used by
// Copy and Cut to capture a selection for re-injection elsewhere in the
// pipeline. It implements event.Source, so it can be passed directly as
// injector content or nested in builder fragments.
//
// A Buffer belongs to a single pipeline invocation at a time: the stage
// that fills it resets it at the start of the pass.
type Buffer struct {
	events []event.Event
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer { return &Buffer{} }

// Append adds an event to the buffer.
func (b *Buffer) Append(ev event.Event) { b.events = append(b.events, ev) }

// Reset empties the buffer.
func (b *Buffer) Reset() { b.events = b.events[:0] }

// Len returns the number of buffered events.
func (b *Buffer) Len() int { return len(b.events) }

// Events returns the buffered events in original document order.
func (b *Buffer) Events() []event.Event {
	out := make([]event.Event, len(b.events))
	copy(out, b.events)
	return out
}

// Copy materializes the entire input stream, resets buf, stores the
// underlying event of every selected item in it (original order), and
// replays the full stream unchanged downstream.
//
// This stage deliberately breaks the streaming guarantee: the whole
// upstream is forced into memory when the pipeline is assembled on its
// input.
func Copy(buf *Buffer) Stage {
	return func(in *Cursor) *Cursor {
		buf.Reset()
		var all []MarkedEvent
		for {
			me, ok := in.Next()
			if !ok {
				break
			}
			all = append(all, me)
			if me.Mark.Selected() {
				buf.Append(me.Event)
			}
		}
		pos := 0
		return in.Derive(func() (MarkedEvent, bool) {
			if pos >= len(all) {
				return MarkedEvent{}, false
			}
			me := all[pos]
			pos++
			return me, true
		})
	}
}

// Cut is Copy followed by Remove: the selection is captured into buf and
// dropped from the stream.
func Cut(buf *Buffer) Stage {
	return func(in *Cursor) *Cursor {
		return Remove()(Copy(buf)(in))
	}
}
