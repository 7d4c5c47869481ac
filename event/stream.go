package event

// Stream is a finite, single-pass, lazily produced sequence of events.
// Consumers drive it: each Next call advances exactly one event, so a
// chain of derived streams suspends at every pull boundary. After Next
// returns false the consumer must check Err; a nil error means the stream
// ended normally.
type Stream interface {
	Next() (Event, bool)
	Err() error
}

// Source is anything that can contribute a materialized event sequence:
// buffers, builder fragments, parsed documents.
type Source interface {
	Events() []Event
}

type sliceStream struct {
	events []Event
	pos    int
}

// FromSlice wraps a materialized event sequence as a Stream.
func FromSlice(events []Event) Stream {
	return &sliceStream{events: events}
}

// FromSource wraps a Source as a Stream, materializing it once on first
// pull.
func FromSource(src Source) Stream {
	return FromSlice(src.Events())
}

func (s *sliceStream) Next() (Event, bool) {
	if s.pos >= len(s.events) {
		return Event{}, false
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, true
}

func (s *sliceStream) Err() error { return nil }

type funcStream struct {
	next func() (Event, bool)
	err  func() error
}

// StreamFunc builds a Stream from a pull function and an error accessor.
// A nil err is treated as always-nil.
func StreamFunc(next func() (Event, bool), err func() error) Stream {
	if err == nil {
		err = func() error { return nil }
	}
	return &funcStream{next: next, err: err}
}

func (s *funcStream) Next() (Event, bool) { return s.next() }
func (s *funcStream) Err() error          { return s.err() }

// Drain pulls the stream to exhaustion and returns the events along with
// the stream's terminal error.
func Drain(s Stream) ([]Event, error) {
	var events []Event
	for {
		ev, ok := s.Next()
		if !ok {
			return events, s.Err()
		}
		events = append(events, ev)
	}
}

// Concat chains streams front to back. The combined stream reports the
// first error any constituent stream surfaces.
func Concat(streams ...Stream) Stream {
	idx := 0
	var err error
	return StreamFunc(
		func() (Event, bool) {
			for idx < len(streams) {
				if ev, ok := streams[idx].Next(); ok {
					return ev, true
				}
				if e := streams[idx].Err(); e != nil && err == nil {
					err = e
					return Event{}, false
				}
				idx++
			}
			return Event{}, false
		},
		func() error { return err },
	)
}
