package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/weft/event"
	"github.com/teranos/weft/input"
)

const (
	ns1 = event.Namespace("http://example.org/ns1")
	ns2 = event.Namespace("http://example.org/ns2")
)

func TestFlattenerDeclaredPrefixes(t *testing.T) {
	doc := `<doc xmlns="http://example.org/ns1" xmlns:two="http://example.org/ns2"><two:item/></doc>`
	got, err := Render(NewXML(Options{}), input.XMLString(doc, "test"))
	require.NoError(t, err)
	assert.Equal(t, doc, got, "declared bindings round-trip")
}

func TestFlattenerSynthesizesDefaultBinding(t *testing.T) {
	events := []event.Event{
		event.StartElement(ns1.Name("doc"), nil, event.NoPos),
		event.EndElement(ns1.Name("doc"), event.NoPos),
	}
	got, err := Render(NewXML(Options{}), event.FromSlice(events))
	require.NoError(t, err)
	assert.Equal(t, `<doc xmlns="http://example.org/ns1"/>`, got)
}

func TestFlattenerGeneratesAttrPrefix(t *testing.T) {
	attrs := event.Attrs{{Name: ns2.Name("x"), Value: "1"}}
	events := []event.Event{
		event.StartElement(ns1.Name("doc"), attrs, event.NoPos),
		event.EndElement(ns1.Name("doc"), event.NoPos),
	}
	got, err := Render(NewXML(Options{}), event.FromSlice(events))
	require.NoError(t, err)
	assert.Equal(t,
		`<doc xmlns="http://example.org/ns1" xmlns:ns1="http://example.org/ns2" ns1:x="1"/>`,
		got)
}

func TestFlattenerPreferredPrefixes(t *testing.T) {
	events := []event.Event{
		event.StartNamespace("", string(ns1), event.NoPos),
		event.StartElement(ns1.Name("doc"), nil, event.NoPos),
		event.EndElement(ns1.Name("doc"), event.NoPos),
		event.EndNamespace("", event.NoPos),
	}
	opts := Options{NamespacePrefixes: map[string]string{string(ns1): "one"}}
	got, err := Render(NewXML(opts), event.FromSlice(events))
	require.NoError(t, err)
	// The configured prefix wins over the stream's default binding, so the
	// tag itself renders prefixed.
	assert.Equal(t, `<one:doc xmlns:one="http://example.org/ns1"/>`, got)
}

func TestFlattenerNoRedeclareIdenticalBinding(t *testing.T) {
	events := []event.Event{
		event.StartNamespace("", string(ns1), event.NoPos),
		event.StartElement(ns1.Name("doc"), nil, event.NoPos),
		event.StartNamespace("", string(ns1), event.NoPos),
		event.StartElement(ns1.Name("child"), nil, event.NoPos),
		event.EndElement(ns1.Name("child"), event.NoPos),
		event.EndNamespace("", event.NoPos),
		event.EndElement(ns1.Name("doc"), event.NoPos),
		event.EndNamespace("", event.NoPos),
	}
	out, err := event.Drain(NamespaceFlattener(nil)(event.FromSlice(events)))
	require.NoError(t, err)

	require.Len(t, out, 4)
	assert.Equal(t, event.NewAttrs("xmlns", string(ns1)), out[0].Attrs)
	assert.Empty(t, out[1].Attrs, "a URI already bound in scope is not redeclared")
}

func TestFlattenerShadowedDefaultBinding(t *testing.T) {
	events := []event.Event{
		event.StartNamespace("", string(ns1), event.NoPos),
		event.StartElement(ns1.Name("doc"), nil, event.NoPos),
		event.StartNamespace("", string(ns2), event.NoPos),
		event.StartElement(ns2.Name("inner"), nil, event.NoPos),
		event.EndElement(ns2.Name("inner"), event.NoPos),
		event.EndNamespace("", event.NoPos),
		event.EndElement(ns1.Name("doc"), event.NoPos),
		event.EndNamespace("", event.NoPos),
	}
	got, err := Render(NewXML(Options{}), event.FromSlice(events))
	require.NoError(t, err)
	assert.Equal(t,
		`<doc xmlns="http://example.org/ns1"><inner xmlns="http://example.org/ns2"/></doc>`,
		got)
}

func TestFlattenerPopsSynthesizedBindingAtEnd(t *testing.T) {
	// The binding synthesized for the first sibling must not leak into the
	// second one: both elements need their own declaration.
	events := []event.Event{
		event.StartElement(event.Name("root"), nil, event.NoPos),
		event.StartElement(ns1.Name("a"), nil, event.NoPos),
		event.EndElement(ns1.Name("a"), event.NoPos),
		event.StartElement(ns1.Name("b"), nil, event.NoPos),
		event.EndElement(ns1.Name("b"), event.NoPos),
		event.EndElement(event.Name("root"), event.NoPos),
	}
	out, err := event.Drain(NamespaceFlattener(nil)(event.FromSlice(events)))
	require.NoError(t, err)

	require.Len(t, out, 6)
	assert.Equal(t, event.NewAttrs("xmlns", string(ns1)), out[1].Attrs)
	assert.Equal(t, event.NewAttrs("xmlns", string(ns1)), out[3].Attrs)
}

func TestStripperDropsForeignWrapperOnly(t *testing.T) {
	events := []event.Event{
		event.StartElement(ns1.Name("doc"), nil, event.NoPos),
		event.TextEvent("keep ", event.NoPos),
		event.StartElement(ns2.Name("wrap"), nil, event.NoPos),
		event.StartElement(event.Name("p"), nil, event.NoPos),
		event.TextEvent("child", event.NoPos),
		event.EndElement(event.Name("p"), event.NoPos),
		event.EndElement(ns2.Name("wrap"), event.NoPos),
		event.EndElement(ns1.Name("doc"), event.NoPos),
	}
	out, err := event.Drain(NamespaceStripper(ns1)(event.FromSlice(events)))
	require.NoError(t, err)

	// Only the wrapper tags of the foreign element are dropped; its
	// children pass through.
	require.Len(t, out, 6)
	assert.Equal(t, event.Name("doc"), out[0].Tag)
	assert.Equal(t, event.Name("p"), out[2].Tag)
	assert.Equal(t, "child", out[3].Text)
}

func TestStripperLocalizesKeptAttrs(t *testing.T) {
	attrs := event.Attrs{
		{Name: ns1.Name("x"), Value: "1"},
		{Name: ns2.Name("y"), Value: "2"},
		{Name: event.Name("z"), Value: "3"},
	}
	events := []event.Event{
		event.StartElement(ns1.Name("doc"), attrs, event.NoPos),
		event.EndElement(ns1.Name("doc"), event.NoPos),
	}
	out, err := event.Drain(NamespaceStripper(ns1)(event.FromSlice(events)))
	require.NoError(t, err)

	require.Len(t, out, 2)
	assert.Equal(t, event.NewAttrs("x", "1", "z", "3"), out[0].Attrs)
}

func TestStripperDropsNamespaceEvents(t *testing.T) {
	events := []event.Event{
		event.StartNamespace("", string(ns1), event.NoPos),
		event.StartElement(ns1.Name("doc"), nil, event.NoPos),
		event.EndElement(ns1.Name("doc"), event.NoPos),
		event.EndNamespace("", event.NoPos),
	}
	out, err := event.Drain(NamespaceStripper(ns1)(event.FromSlice(events)))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, event.Start, out[0].Kind)
}
