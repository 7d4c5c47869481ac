package transform

import (
	"github.com/teranos/weft/errors"
	"github.com/teranos/weft/event"
)

// Content is injectable stream content: a plain string (becomes a single
// TEXT event), an event.Event, an []event.Event sequence, or an
// event.Source such as a Buffer or a builder element. It is resolved at
// each injection, so a Buffer filled earlier in the same pass is observed
// with its live contents.
type Content any

func resolveContent(content Content) []event.Event {
	switch c := content.(type) {
	case nil:
		return nil
	case string:
		return []event.Event{event.TextEvent(c, event.NoPos)}
	case event.Event:
		return []event.Event{c}
	case []event.Event:
		return c
	case event.Source:
		return c.Events()
	default:
		panic(errors.AssertionFailedf("transform: unsupported content type %T", content))
	}
}

func injected(content Content) []MarkedEvent {
	events := resolveContent(content)
	out := make([]MarkedEvent, len(events))
	for i, ev := range events {
		// Injected events are always unmarked so later stages treat them
		// as ordinary, unselected content.
		out[i] = MarkedEvent{Mark: MarkNone, Event: ev}
	}
	return out
}

// queueStage is shared plumbing for stages that emit pending events ahead
// of pulling upstream again.
type queue struct {
	pending []MarkedEvent
}

func (q *queue) push(mes ...MarkedEvent) { q.pending = append(q.pending, mes...) }

func (q *queue) pop() (MarkedEvent, bool) {
	if len(q.pending) == 0 {
		return MarkedEvent{}, false
	}
	me := q.pending[0]
	q.pending = q.pending[1:]
	return me, true
}

// Replace substitutes each selected run with content: the content is
// emitted unmarked in place of the run's first event, the rest of the run
// is discarded, and the next NONE-marked event passes through unchanged.
func Replace(content Content) Stage {
	return func(in *Cursor) *Cursor {
		var q queue
		skipping := false
		return in.Derive(func() (MarkedEvent, bool) {
			for {
				if me, ok := q.pop(); ok {
					return me, true
				}
				me, ok := in.Next()
				if !ok {
					return MarkedEvent{}, false
				}
				if skipping {
					if me.Mark.Selected() {
						continue
					}
					skipping = false
					return me, true
				}
				if me.Mark.Selected() {
					q.push(injected(content)...)
					skipping = true
					continue
				}
				return me, true
			}
		})
	}
}

// Before inserts content immediately prior to each selection: before
// every ENTER or OUTSIDE event.
func Before(content Content) Stage {
	return func(in *Cursor) *Cursor {
		var q queue
		return in.Derive(func() (MarkedEvent, bool) {
			if me, ok := q.pop(); ok {
				return me, true
			}
			me, ok := in.Next()
			if !ok {
				return MarkedEvent{}, false
			}
			if me.Mark == MarkEnter || me.Mark == MarkOutside {
				q.push(injected(content)...)
				q.push(me)
				return q.pop()
			}
			return me, true
		})
	}
}

// After emits each selected run unchanged and inserts content immediately
// after it: after the terminating EXIT, or after the OUTSIDE event itself
// for non-element matches.
func After(content Content) Stage {
	return func(in *Cursor) *Cursor {
		var q queue
		inRun := false
		return in.Derive(func() (MarkedEvent, bool) {
			if me, ok := q.pop(); ok {
				return me, true
			}
			me, ok := in.Next()
			if !ok {
				if inRun {
					inRun = false
					q.push(injected(content)...)
					return q.pop()
				}
				return MarkedEvent{}, false
			}
			if inRun {
				if me.Mark.Selected() {
					return me, true
				}
				inRun = false
				q.push(injected(content)...)
				q.push(me)
				return q.pop()
			}
			if me.Mark.Selected() {
				inRun = true
			}
			return me, true
		})
	}
}

// Prepend inserts content as the first child of selected elements: after
// each ENTER event, or directly after an OUTSIDE event.
func Prepend(content Content) Stage {
	return func(in *Cursor) *Cursor {
		var q queue
		return in.Derive(func() (MarkedEvent, bool) {
			if me, ok := q.pop(); ok {
				return me, true
			}
			me, ok := in.Next()
			if !ok {
				return MarkedEvent{}, false
			}
			if me.Mark == MarkEnter || me.Mark == MarkOutside {
				q.push(injected(content)...)
			}
			return me, true
		})
	}
}

// Append inserts content as the last child of selected elements:
// immediately before the terminating EXIT event. A run that ends without
// its EXIT is a contract violation and fails the pipeline.
func Append(content Content) Stage {
	return func(in *Cursor) *Cursor {
		var q queue
		inRun := false
		return in.Derive(func() (MarkedEvent, bool) {
			if me, ok := q.pop(); ok {
				return me, true
			}
			me, ok := in.Next()
			if !ok {
				if inRun {
					in.Fail(errors.AssertionFailedf("transform: selection ended without EXIT reaching Append"))
				}
				return MarkedEvent{}, false
			}
			if inRun && me.Mark == MarkExit {
				inRun = false
				q.push(injected(content)...)
				q.push(me)
				return q.pop()
			}
			if me.Mark == MarkEnter {
				inRun = true
			}
			return me, true
		})
	}
}

// Wrap encloses each maximal run of consecutive selected events in the
// template element: the template's opening fragment is emitted unmarked
// before the run, its closing event after the run, and the run's own
// events pass through with their original marks. The template may be a
// tag name (string), an event sequence, or an event.Source such as a
// builder element; its final event is taken as the closing fragment.
func Wrap(template Content) Stage {
	return func(in *Cursor) *Cursor {
		var q queue
		inRun := false
		var closing MarkedEvent
		return in.Derive(func() (MarkedEvent, bool) {
			if me, ok := q.pop(); ok {
				return me, true
			}
			me, ok := in.Next()
			if !ok {
				if inRun {
					inRun = false
					return closing, true
				}
				return MarkedEvent{}, false
			}
			if inRun {
				if me.Mark.Selected() {
					return me, true
				}
				inRun = false
				q.push(me)
				return closing, true
			}
			if !me.Mark.Selected() {
				return me, true
			}
			tpl := wrapTemplate(template)
			if len(tpl) == 0 {
				return me, true
			}
			closing = MarkedEvent{Mark: MarkNone, Event: tpl[len(tpl)-1]}
			for _, ev := range tpl[:len(tpl)-1] {
				q.push(MarkedEvent{Mark: MarkNone, Event: ev})
			}
			q.push(me)
			inRun = true
			return q.pop()
		})
	}
}

func wrapTemplate(template Content) []event.Event {
	if name, ok := template.(string); ok {
		tag := event.ParseQName(name)
		return []event.Event{
			event.StartElement(tag, nil, event.NoPos),
			event.EndElement(tag, event.NoPos),
		}
	}
	return resolveContent(template)
}
