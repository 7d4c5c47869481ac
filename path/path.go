// Package path implements a deliberately small path-expression Selector
// for the transformation engine.
//
// Supported syntax: steps separated by "/", where a step is an element's
// local name or "*"; a leading "//" (or ".//") selects at any depth; an
// interior "//" makes the following step match any descendant; a final
// "text()" step selects the text children of the matched path. Anything
// richer (predicates, attributes, namespaces) is out of scope — the
// Selector capability accepts any external matching engine.
//
//	p := path.MustParse("body//em")
//	out := transform.New(p.Selector()).SetAttr("class", "emphasis").Transform(in)
package path

import (
	"strings"

	"github.com/teranos/weft/errors"
	"github.com/teranos/weft/event"
	"github.com/teranos/weft/transform"
)

type axis uint8

const (
	child axis = iota
	descendant
)

type step struct {
	axis axis
	name string // element local name, or "*"
}

// Path is a compiled path expression. Each selection pass needs its own
// Selector instance (the matcher is stateful), obtained from Selector.
type Path struct {
	expr  string
	steps []step
	text  bool // final step was text()
}

// Parse compiles a path expression.
func Parse(expr string) (*Path, error) {
	s := strings.TrimSpace(expr)
	s = strings.TrimPrefix(s, ".")
	first := child
	if strings.HasPrefix(s, "//") {
		first = descendant
		s = s[2:]
	} else {
		s = strings.TrimPrefix(s, "/")
	}
	if s == "" {
		return nil, errors.Newf("path: empty expression %q", expr)
	}

	p := &Path{expr: expr}
	next := first
	for _, part := range strings.Split(s, "/") {
		if part == "" {
			// interior "//": the next step matches any descendant
			next = descendant
			continue
		}
		if part == "text()" {
			p.text = true
			continue
		}
		if p.text {
			return nil, errors.Newf("path: text() must be the final step in %q", expr)
		}
		p.steps = append(p.steps, step{axis: next, name: part})
		next = child
	}
	if len(p.steps) == 0 && !p.text {
		return nil, errors.Newf("path: no steps in %q", expr)
	}
	return p, nil
}

// MustParse is Parse, panicking on a bad expression.
func MustParse(expr string) *Path {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Path) String() string { return p.expr }

// Selector returns a fresh stateful Selector for one selection pass.
func (p *Path) Selector() transform.Selector {
	return &matcher{path: p}
}

// matcher is the stateful per-pass Selector: it tracks the open-element
// stack across Test calls, including updateOnly ones.
type matcher struct {
	path  *Path
	stack []event.QName // open elements, root first
}

func (m *matcher) Test(ev event.Event, namespaces map[string]string, variables map[string]any, updateOnly bool) transform.Result {
	p := m.path
	switch ev.Kind {
	case event.Start:
		m.stack = append(m.stack, ev.Tag)
		if updateOnly || p.text {
			return transform.Result{}
		}
		// Anchored paths are relative to the root element: the first
		// child-axis step matches the root's children.
		if matchSteps(p.steps, m.stack[1:]) {
			return transform.Matched
		}
	case event.End:
		if n := len(m.stack); n > 0 {
			m.stack = m.stack[:n-1]
		}
	case event.Text:
		if updateOnly || !p.text {
			return transform.Result{}
		}
		if len(m.stack) > 0 && matchSteps(p.steps, m.stack[1:]) {
			return transform.Matched
		}
	}
	return transform.Result{}
}

func matchSteps(steps []step, chain []event.QName) bool {
	if len(steps) == 0 {
		return len(chain) == 0
	}
	st := steps[0]
	switch st.axis {
	case child:
		return len(chain) > 0 && nameMatches(st.name, chain[0]) &&
			matchSteps(steps[1:], chain[1:])
	default: // descendant: skip any number of levels before matching
		for i := range chain {
			if nameMatches(st.name, chain[i]) && matchSteps(steps[1:], chain[i+1:]) {
				return true
			}
		}
		return false
	}
}

func nameMatches(name string, q event.QName) bool {
	return name == "*" || q.Local == name
}
