package transform

// Cursor is the shared pull point of a transformation pipeline. Every
// stage receives the upstream cursor and derives a new one from it; a
// stage's pull function is free to consume a variable-length window of
// upstream events per downstream pull (Selection, Wrap, Replace, After
// and Append all do), which is why stages share one cursor object per
// link rather than mapping over events independently.
//
// All cursors derived from one pipeline share a single error slot. Once
// any stage fails, every cursor in the chain stops producing and reports
// the failure through Err.
type Cursor struct {
	next func() (MarkedEvent, bool)
	err  *error
}

// NewCursor builds the head cursor of a pipeline from a pull function.
func NewCursor(next func() (MarkedEvent, bool)) *Cursor {
	var err error
	return &Cursor{next: next, err: &err}
}

// Next returns the next marked event. It returns false when the stream is
// exhausted or a stage has failed; check Err to distinguish.
func (c *Cursor) Next() (MarkedEvent, bool) {
	if *c.err != nil {
		return MarkedEvent{}, false
	}
	return c.next()
}

// Err returns the pipeline's terminal error, if any.
func (c *Cursor) Err() error { return *c.err }

// Fail records the pipeline's terminal error. The first recorded error
// wins.
func (c *Cursor) Fail(err error) {
	if *c.err == nil {
		*c.err = err
	}
}

// Derive returns a downstream cursor that pulls through next and shares
// this cursor's error slot.
func (c *Cursor) Derive(next func() (MarkedEvent, bool)) *Cursor {
	return &Cursor{next: next, err: c.err}
}

// Stage is one link of a transformation pipeline: it derives an output
// cursor from the shared input cursor. Custom stages can be appended to a
// Transformer with Then.
type Stage func(*Cursor) *Cursor
