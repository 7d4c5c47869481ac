package event

import (
	"fmt"
	"strings"
)

// Attr is a single (name, value) attribute pair.
type Attr struct {
	Name  QName
	Value string
}

// Attrs is the ordered attribute list of an element. Insertion order is
// preserved on output. It is manipulated with non-mutating set/remove
// operations so that duplicate names cannot arise and shared event values
// stay immutable.
type Attrs []Attr

// NewAttrs builds an attribute list from alternating name/value string
// pairs. Names go through ParseQName, so "{uri}local" forms work.
func NewAttrs(pairs ...string) Attrs {
	if len(pairs)%2 != 0 {
		panic("event: NewAttrs requires an even number of arguments")
	}
	attrs := make(Attrs, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		attrs = attrs.With(ParseQName(pairs[i]), pairs[i+1])
	}
	return attrs
}

// Get returns the value of the named attribute and whether it is present.
func (a Attrs) Get(name QName) (string, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Has reports whether the named attribute is present.
func (a Attrs) Has(name QName) bool {
	_, ok := a.Get(name)
	return ok
}

// With returns a copy of the list with the named attribute set to value.
// An existing entry keeps its position; a new entry is appended at the
// end.
func (a Attrs) With(name QName, value string) Attrs {
	out := make(Attrs, len(a), len(a)+1)
	copy(out, a)
	for i, attr := range out {
		if attr.Name == name {
			out[i].Value = value
			return out
		}
	}
	return append(out, Attr{Name: name, Value: value})
}

// Without returns a copy of the list with the named attribute removed.
// It is a no-op copy when the attribute is absent.
func (a Attrs) Without(name QName) Attrs {
	out := make(Attrs, 0, len(a))
	for _, attr := range a {
		if attr.Name != name {
			out = append(out, attr)
		}
	}
	return out
}

func (a Attrs) String() string {
	if len(a) == 0 {
		return "Attrs()"
	}
	parts := make([]string, len(a))
	for i, attr := range a {
		parts[i] = fmt.Sprintf("%s=%q", attr.Name, attr.Value)
	}
	return "Attrs(" + strings.Join(parts, " ") + ")"
}
