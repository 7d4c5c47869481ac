// Package builder constructs markup event fragments programmatically.
// Elements and fragments implement event.Source, so they plug directly
// into transformation injectors and Wrap templates:
//
//	frag := builder.El("div",
//		builder.El("a").Attr("href", "foo"),
//		builder.El("br"),
//		builder.El("hr").Attr("noshade", "True"),
//	)
//	out, err := output.Render(output.NewXML(output.Options{}), event.FromSource(frag))
//	// <div><a href="foo"/><br/><hr noshade="True"/></div>
package builder

import (
	"fmt"

	"github.com/teranos/weft/errors"
	"github.com/teranos/weft/event"
)

// Fragment is a parentless list of child nodes: elements, text, events or
// other event sources.
type Fragment struct {
	children []any
}

// Frag builds a fragment from child nodes. Accepted child types: nil
// (skipped), string and fmt.Stringer-free scalars (become TEXT events),
// *Element, *Fragment, event.Event, []event.Event, and event.Source.
func Frag(children ...any) *Fragment {
	f := &Fragment{}
	f.Add(children...)
	return f
}

// Add appends child nodes to the fragment.
func (f *Fragment) Add(children ...any) *Fragment {
	for _, child := range children {
		if child == nil {
			continue
		}
		f.children = append(f.children, child)
	}
	return f
}

// Events generates the fragment's markup events.
func (f *Fragment) Events() []event.Event {
	var out []event.Event
	for _, child := range f.children {
		out = append(out, childEvents(child)...)
	}
	return out
}

func childEvents(child any) []event.Event {
	switch c := child.(type) {
	case string:
		return []event.Event{event.TextEvent(c, event.NoPos)}
	case event.Event:
		return []event.Event{c}
	case []event.Event:
		return c
	case event.Source:
		return c.Events()
	case int, int64, float64, bool:
		return []event.Event{event.TextEvent(fmt.Sprint(c), event.NoPos)}
	default:
		panic(errors.AssertionFailedf("builder: unsupported child type %T", child))
	}
}

// Element is a single element node with ordered attributes and child
// nodes.
type Element struct {
	tag      event.QName
	attrs    event.Attrs
	children Fragment
}

// El builds an element. The name may be a plain local name, a
// "{uri}local" qualified form, or an event.QName; children follow the
// same rules as Frag.
func El(name any, children ...any) *Element {
	e := &Element{}
	switch n := name.(type) {
	case string:
		e.tag = event.ParseQName(n)
	case event.QName:
		e.tag = n
	default:
		panic(errors.AssertionFailedf("builder: unsupported element name type %T", name))
	}
	e.children.Add(children...)
	return e
}

// Attr sets an attribute, preserving insertion order. It returns the
// element for chaining.
func (e *Element) Attr(name, value string) *Element {
	e.attrs = e.attrs.With(event.ParseQName(name), value)
	return e
}

// Add appends child nodes to the element.
func (e *Element) Add(children ...any) *Element {
	e.children.Add(children...)
	return e
}

// Tag returns the element's qualified name.
func (e *Element) Tag() event.QName { return e.tag }

// Events generates the element's markup events: START, children, END.
func (e *Element) Events() []event.Event {
	out := []event.Event{event.StartElement(e.tag, e.attrs, event.NoPos)}
	out = append(out, e.children.Events()...)
	return append(out, event.EndElement(e.tag, event.NoPos))
}
