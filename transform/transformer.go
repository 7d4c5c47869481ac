package transform

import (
	"go.uber.org/zap"

	"github.com/teranos/weft/event"
)

// Transformer composes selection and transformation stages into a
// pipeline. The zero value is a passthrough; stages are appended with the
// fluent methods, each of which returns a new Transformer so prefixes can
// be shared and reused:
//
//	emphasis := transform.New(path.MustParse("body//em").Selector()).SetAttr("class", "emphasis")
//	out := emphasis.Transform(stream)
//
// Care is needed when reusing pipelines that hold Buffers: the buffer is
// reset at the start of each pass that fills it.
type Transformer struct {
	stages []Stage
}

// New creates a Transformer. With a non-nil selector the pipeline starts
// with the corresponding selection stage.
func New(sel Selector) *Transformer {
	t := &Transformer{}
	if sel != nil {
		t.stages = append(t.stages, Select(sel))
	}
	return t
}

func (t *Transformer) with(stages ...Stage) *Transformer {
	out := make([]Stage, 0, len(t.stages)+len(stages))
	out = append(out, t.stages...)
	out = append(out, stages...)
	return &Transformer{stages: out}
}

// Then appends a custom stage to the pipeline.
func (t *Transformer) Then(stage Stage) *Transformer { return t.with(stage) }

// Pipe concatenates another transformer's stages after this one's.
func (t *Transformer) Pipe(other *Transformer) *Transformer {
	return t.with(other.stages...)
}

// Select appends a fresh selection stage. Applied mid-chain, the selector
// examines the underlying events of the already-marked stream (ignoring
// prior marks): newly matched events get fresh ENTER/INSIDE/EXIT/OUTSIDE
// marks while unmatched events keep the marks they already carry, so
// chained selections accumulate monotonically.
func (t *Transformer) Select(sel Selector) *Transformer { return t.with(Select(sel)) }

// Invert flips selected and unselected events (see Invert).
func (t *Transformer) Invert() *Transformer { return t.with(Invert()) }

// Empty drops the content of selected elements (see Empty).
func (t *Transformer) Empty() *Transformer { return t.with(Empty()) }

// Remove drops the selection from the stream (see Remove).
func (t *Transformer) Remove() *Transformer { return t.with(Remove()) }

// Unwrap removes the enclosing element of each selection (see Unwrap).
func (t *Transformer) Unwrap() *Transformer { return t.with(Unwrap()) }

// Wrap encloses each selected run in the template element (see Wrap).
func (t *Transformer) Wrap(template Content) *Transformer { return t.with(Wrap(template)) }

// Replace substitutes each selected run with content (see Replace).
func (t *Transformer) Replace(content Content) *Transformer { return t.with(Replace(content)) }

// Before inserts content before each selection (see Before).
func (t *Transformer) Before(content Content) *Transformer { return t.with(Before(content)) }

// After inserts content after each selection (see After).
func (t *Transformer) After(content Content) *Transformer { return t.with(After(content)) }

// Prepend inserts content as the first child of selected elements (see
// Prepend).
func (t *Transformer) Prepend(content Content) *Transformer { return t.with(Prepend(content)) }

// Append inserts content as the last child of selected elements (see
// Append).
func (t *Transformer) Append(content Content) *Transformer { return t.with(Append(content)) }

// SetAttr sets an attribute on selected elements (see SetAttr).
func (t *Transformer) SetAttr(name, value string) *Transformer { return t.with(SetAttr(name, value)) }

// DelAttr removes an attribute from selected elements (see DelAttr).
func (t *Transformer) DelAttr(name string) *Transformer { return t.with(DelAttr(name)) }

// Apply rewrites selected events of the given kind through fn (see
// Apply).
func (t *Transformer) Apply(fn func(event.Event) event.Event, kind event.Kind) *Transformer {
	return t.with(Apply(fn, kind))
}

// Trace logs marked events passing this point of the pipeline (see
// Trace).
func (t *Transformer) Trace(prefix string, log *zap.SugaredLogger) *Transformer {
	return t.with(Trace(prefix, log))
}

// Copy captures the selection into buf (see Copy).
func (t *Transformer) Copy(buf *Buffer) *Transformer { return t.with(Copy(buf)) }

// Cut captures the selection into buf and removes it (see Cut).
func (t *Transformer) Cut(buf *Buffer) *Transformer { return t.with(Cut(buf)) }

// Transform runs the pipeline over in: the input is wrapped as unmarked
// events, each stage is applied in order, and the marks are stripped from
// the result. The returned stream is lazy except across Copy/Cut stages
// and surfaces pipeline failures (such as ErrStreamConsistency) through
// Err.
func (t *Transformer) Transform(in event.Stream) event.Stream {
	cur := NewCursor(func() (MarkedEvent, bool) {
		ev, ok := in.Next()
		if !ok {
			return MarkedEvent{}, false
		}
		return MarkedEvent{Mark: MarkNone, Event: ev}, true
	})
	for _, stage := range t.stages {
		cur = stage(cur)
	}
	out := cur
	return event.StreamFunc(
		func() (event.Event, bool) {
			me, ok := out.Next()
			if !ok {
				return event.Event{}, false
			}
			return me.Event, true
		},
		func() error {
			if err := out.Err(); err != nil {
				return err
			}
			return in.Err()
		},
	)
}
