package transform

import "github.com/teranos/weft/event"

// Result is a Selector's verdict on one event.
type Result struct {
	// Matched reports whether the event matches the selection.
	Matched bool
	// Substitute, when non-nil, is a selector-driven rewrite: the
	// selection stage emits the substitute (marked ENTER) in place of the
	// original event and treats the match as complete.
	Substitute *event.Event
}

// Matched is the plain positive verdict.
var Matched = Result{Matched: true}

// Selector is the external capability that decides which events are
// selected. Implementations are typically stateful within one pass
// (tracking sibling positions, open elements and the like).
//
// State-mutation contract: the selection stage calls Test for every event
// inside a matched subtree with updateOnly set, so position-dependent
// predicates remain correct for matches occurring later at the same or a
// shallower depth. The verdict of an updateOnly call is discarded; the
// implementation must still advance its internal state.
//
// The namespaces and variables scopes are passed through from the
// pipeline; simple selectors may ignore them.
type Selector interface {
	Test(ev event.Event, namespaces map[string]string, variables map[string]any, updateOnly bool) Result
}

// SelectorFunc adapts a function to the Selector interface.
type SelectorFunc func(ev event.Event, namespaces map[string]string, variables map[string]any, updateOnly bool) Result

// Test implements Selector.
func (f SelectorFunc) Test(ev event.Event, namespaces map[string]string, variables map[string]any, updateOnly bool) Result {
	return f(ev, namespaces, variables, updateOnly)
}
