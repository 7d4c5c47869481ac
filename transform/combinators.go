package transform

import (
	"go.uber.org/zap"

	"github.com/teranos/weft/event"
	"github.com/teranos/weft/logger"
)

// mapStage lifts a per-event function into a Stage. The function returns
// the (possibly rewritten) event and whether to keep it.
func mapStage(fn func(MarkedEvent) (MarkedEvent, bool)) Stage {
	return func(in *Cursor) *Cursor {
		return in.Derive(func() (MarkedEvent, bool) {
			for {
				me, ok := in.Next()
				if !ok {
					return MarkedEvent{}, false
				}
				if out, keep := fn(me); keep {
					return out, true
				}
			}
		})
	}
}

// Invert flips the selection: any selected mark becomes NONE, and NONE
// becomes OUTSIDE.
func Invert() Stage {
	return mapStage(func(me MarkedEvent) (MarkedEvent, bool) {
		if me.Mark.Selected() {
			me.Mark = MarkNone
		} else {
			me.Mark = MarkOutside
		}
		return me, true
	})
}

// Empty drops the content of selected regions: INSIDE and OUTSIDE events
// vanish, ENTER and EXIT (the element shell) and NONE events remain.
func Empty() Stage {
	return mapStage(func(me MarkedEvent) (MarkedEvent, bool) {
		return me, me.Mark != MarkInside && me.Mark != MarkOutside
	})
}

// Remove drops the entire selection; only NONE-marked events remain.
func Remove() Stage {
	return mapStage(func(me MarkedEvent) (MarkedEvent, bool) {
		return me, me.Mark == MarkNone
	})
}

// Unwrap removes the outermost enclosing element of each selection,
// keeping its contents one level up: ENTER and EXIT events are dropped.
func Unwrap() Stage {
	return mapStage(func(me MarkedEvent) (MarkedEvent, bool) {
		return me, me.Mark != MarkEnter && me.Mark != MarkExit
	})
}

// SetAttr sets (adds or overwrites) the named attribute on selected
// elements. Only ENTER-marked START/EMPTY events are touched; an existing
// attribute keeps its position, a new one is appended.
func SetAttr(name, value string) Stage {
	qname := event.ParseQName(name)
	return mapStage(func(me MarkedEvent) (MarkedEvent, bool) {
		if me.Mark == MarkEnter && (me.Event.Kind == event.Start || me.Event.Kind == event.Empty) {
			me.Event.Attrs = me.Event.Attrs.With(qname, value)
		}
		return me, true
	})
}

// DelAttr removes the named attribute from selected elements, if present.
func DelAttr(name string) Stage {
	qname := event.ParseQName(name)
	return mapStage(func(me MarkedEvent) (MarkedEvent, bool) {
		if me.Mark == MarkEnter && (me.Event.Kind == event.Start || me.Event.Kind == event.Empty) {
			me.Event.Attrs = me.Event.Attrs.Without(qname)
		}
		return me, true
	})
}

// Apply rewrites selected events of the given kind through fn. Events
// with other kinds or without a mark pass through unchanged. A zero kind
// (event.KindInvalid) matches every kind.
func Apply(fn func(event.Event) event.Event, kind event.Kind) Stage {
	return mapStage(func(me MarkedEvent) (MarkedEvent, bool) {
		if me.Mark.Selected() && (kind == event.KindInvalid || me.Event.Kind == kind) {
			me.Event = fn(me.Event)
		}
		return me, true
	})
}

// Trace logs every marked event passing through the stage, unmodified in
// order and content. A nil log uses the global logger.
func Trace(prefix string, log *zap.SugaredLogger) Stage {
	return mapStage(func(me MarkedEvent) (MarkedEvent, bool) {
		l := log
		if l == nil {
			l = logger.Logger
		}
		l.Infof("%s%s", prefix, me)
		return me, true
	})
}
