package output

import "github.com/teranos/weft/event"

// EmptyTag coalesces a START immediately followed by its END into a
// single EMPTY event carrying the START payload. All other sequences pass
// through unchanged; adjacent contentless elements each collapse
// independently.
func EmptyTag() Filter {
	return func(in event.Stream) event.Stream {
		var held *event.Event // pending START, undecided
		var queued *event.Event
		return event.StreamFunc(
			func() (event.Event, bool) {
				for {
					if queued != nil {
						ev := *queued
						queued = nil
						return ev, true
					}
					ev, ok := in.Next()
					if !ok {
						if held != nil {
							out := *held
							held = nil
							return out, true
						}
						return event.Event{}, false
					}
					if held != nil {
						if ev.Kind == event.End {
							empty := event.EmptyElement(held.Tag, held.Attrs, held.Pos)
							held = nil
							return empty, true
						}
						out := *held
						held = nil
						if ev.Kind == event.Start {
							e := ev
							held = &e
						} else {
							e := ev
							queued = &e
						}
						return out, true
					}
					if ev.Kind == event.Start {
						e := ev
						held = &e
						continue
					}
					return ev, true
				}
			},
			in.Err,
		)
	}
}
