package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  QName
	}{
		{"plain local name", "body", QName{Local: "body"}},
		{"clark notation", "{http://www.w3.org/1999/xhtml}body", QName{Namespace: "http://www.w3.org/1999/xhtml", Local: "body"}},
		{"brace-free qualified form", "http://www.w3.org/1999/xhtml}body", QName{Namespace: "http://www.w3.org/1999/xhtml", Local: "body"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQName(tt.input))
		})
	}
}

func TestQNameEquality(t *testing.T) {
	xhtml := Namespace("http://www.w3.org/1999/xhtml")

	// Equality is by (namespace, local) pair, regardless of construction.
	assert.Equal(t, xhtml.Name("body"), ParseQName("{http://www.w3.org/1999/xhtml}body"))
	assert.NotEqual(t, Name("body"), xhtml.Name("body"), "namespace is part of identity")
}

func TestNamespaceContains(t *testing.T) {
	xhtml := Namespace("http://www.w3.org/1999/xhtml")
	xhtml2 := Namespace("http://www.w3.org/2002/06/xhtml2")

	q := xhtml.Name("body")
	assert.True(t, xhtml.Contains(q))
	assert.False(t, xhtml2.Contains(q))
	assert.False(t, xhtml.Contains(Name("body")))
}

func TestQNameString(t *testing.T) {
	assert.Equal(t, "body", Name("body").String())
	assert.Equal(t, "{NS1}item", QName{Namespace: "NS1", Local: "item"}.String())
}
