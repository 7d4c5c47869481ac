package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/weft/event"
)

func drainFilter(t *testing.T, f Filter, events []event.Event) []event.Event {
	t.Helper()
	out, err := event.Drain(f(event.FromSlice(events)))
	require.NoError(t, err)
	return out
}

func startEv(name string) event.Event {
	return event.StartElement(event.Name(name), nil, event.NoPos)
}

func endEv(name string) event.Event {
	return event.EndElement(event.Name(name), event.NoPos)
}

func textEv(s string) event.Event { return event.TextEvent(s, event.NoPos) }

func TestEmptyTagCoalesces(t *testing.T) {
	out := drainFilter(t, EmptyTag(), []event.Event{startEv("elem"), endEv("elem")})
	require.Len(t, out, 1)
	assert.Equal(t, event.Empty, out[0].Kind)
	assert.Equal(t, event.Name("elem"), out[0].Tag)
}

func TestEmptyTagLeavesContentAlone(t *testing.T) {
	events := []event.Event{startEv("elem"), textEv("x"), endEv("elem")}
	out := drainFilter(t, EmptyTag(), events)
	assert.Equal(t, events, out)
}

func TestEmptyTagAdjacentElements(t *testing.T) {
	events := []event.Event{
		startEv("root"),
		startEv("a"), endEv("a"),
		startEv("b"), endEv("b"),
		endEv("root"),
	}
	out := drainFilter(t, EmptyTag(), events)
	require.Len(t, out, 4)
	assert.Equal(t, event.Start, out[0].Kind)
	assert.Equal(t, event.Empty, out[1].Kind)
	assert.Equal(t, event.Empty, out[2].Kind)
	assert.Equal(t, event.End, out[3].Kind)
}

func TestEmptyTagFlushesHeldStartAtEnd(t *testing.T) {
	out := drainFilter(t, EmptyTag(), []event.Event{startEv("elem")})
	require.Len(t, out, 1)
	assert.Equal(t, event.Start, out[0].Kind)
}

func TestWhitespaceCollapsesNewlineRuns(t *testing.T) {
	events := []event.Event{
		startEv("doc"),
		textEv("one\n\n\ntwo  \nthree"),
		endEv("doc"),
	}
	out := drainFilter(t, Whitespace(nil, nil), events)
	require.Len(t, out, 3)
	assert.Equal(t, "one\ntwo\nthree", out[1].Text)
	assert.True(t, out[1].Literal, "flushed runs are emitted pre-escaped")
}

func TestWhitespaceMergesAdjacentText(t *testing.T) {
	events := []event.Event{
		startEv("doc"),
		textEv("a "), textEv("& "), textEv("b"),
		endEv("doc"),
	}
	out := drainFilter(t, Whitespace(nil, nil), events)
	require.Len(t, out, 3)
	assert.Equal(t, "a &amp; b", out[1].Text, "pieces are escaped during the merge")
}

func TestWhitespacePreserveTag(t *testing.T) {
	preserve := map[event.QName]bool{event.Name("pre"): true}
	events := []event.Event{
		startEv("pre"),
		textEv("  one\n\n\ntwo  "),
		endEv("pre"),
	}
	out := drainFilter(t, Whitespace(preserve, nil), events)
	require.Len(t, out, 3)
	assert.Equal(t, "  one\n\n\ntwo  ", out[1].Text)
}

func TestWhitespaceXMLSpacePreserve(t *testing.T) {
	attrs := event.NewAttrs("{http://www.w3.org/XML/1998/namespace}space", "preserve")
	events := []event.Event{
		event.StartElement(event.Name("p"), attrs, event.NoPos),
		textEv("a\n\n\nb"),
		endEv("p"),
	}
	out := drainFilter(t, Whitespace(nil, nil), events)
	require.Len(t, out, 3)
	assert.Equal(t, "a\n\n\nb", out[1].Text)
}

func TestWhitespacePreserveCoversDescendants(t *testing.T) {
	preserve := map[event.QName]bool{event.Name("pre"): true}
	events := []event.Event{
		startEv("pre"),
		startEv("span"),
		textEv("a\n\n\nb"),
		endEv("span"),
		endEv("pre"),
	}
	out := drainFilter(t, Whitespace(preserve, nil), events)
	require.Len(t, out, 5)
	assert.Equal(t, "a\n\n\nb", out[2].Text)
}

func TestWhitespaceNoescapeTag(t *testing.T) {
	noescape := map[event.QName]bool{event.Name("script"): true}
	events := []event.Event{
		startEv("script"),
		textEv("if (1 < 2) {}"),
		endEv("script"),
	}
	out := drainFilter(t, Whitespace(nil, noescape), events)
	require.Len(t, out, 3)
	assert.Equal(t, "if (1 < 2) {}", out[1].Text)
	assert.True(t, out[1].Literal)
}
