package event

import (
	"fmt"
	"strings"
)

// QName is a qualified element or attribute name: an optional namespace
// URI plus a local name. Two QNames are equal when both parts are equal;
// the rendered string form never participates in comparison.
type QName struct {
	Namespace string
	Local     string
}

// Name builds a QName with no namespace.
func Name(local string) QName {
	return QName{Local: local}
}

// ParseQName parses the textual forms "local", "{uri}local" and
// "uri}local" into a QName.
func ParseQName(s string) QName {
	s = strings.TrimPrefix(s, "{")
	if uri, local, ok := strings.Cut(s, "}"); ok {
		return QName{Namespace: uri, Local: local}
	}
	return QName{Local: s}
}

func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// Namespace is a convenience for building and testing QNames bound to one
// namespace URI.
type Namespace string

// Name returns the QName for local within the namespace.
func (n Namespace) Name(local string) QName {
	return QName{Namespace: string(n), Local: local}
}

// Contains reports whether q belongs to the namespace.
func (n Namespace) Contains(q QName) bool {
	return q.Namespace == string(n)
}

func (n Namespace) String() string {
	return fmt.Sprintf("<Namespace %q>", string(n))
}

// XMLNamespace is the namespace of built-in attributes such as xml:lang
// and xml:space.
const XMLNamespace = Namespace("http://www.w3.org/XML/1998/namespace")
