package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/weft/event"
)

func kinds(events []event.Event) []event.Kind {
	out := make([]event.Kind, len(events))
	for i, ev := range events {
		out[i] = ev.Kind
	}
	return out
}

func TestXMLBasicDocument(t *testing.T) {
	events, err := event.Drain(XMLString(`<doc>Some <em>text</em>.</doc>`, "test"))
	require.NoError(t, err)

	want := []event.Kind{
		event.Start, event.Text, event.Start, event.Text, event.End, event.Text, event.End,
	}
	assert.Equal(t, want, kinds(events))
	assert.Equal(t, event.Name("doc"), events[0].Tag)
	assert.Equal(t, "Some ", events[1].Text)
	assert.Equal(t, "text", events[3].Text)
}

func TestXMLNamespaceDeclarations(t *testing.T) {
	doc := `<doc xmlns="NS1" xmlns:two="NS2"><two:item/></doc>`
	events, err := event.Drain(XMLString(doc, "test"))
	require.NoError(t, err)

	want := []event.Kind{
		event.StartNS, event.StartNS, event.Start,
		event.Start, event.End,
		event.End, event.EndNS, event.EndNS,
	}
	require.Equal(t, want, kinds(events))

	assert.Equal(t, "", events[0].Prefix)
	assert.Equal(t, "NS1", events[0].URI)
	assert.Equal(t, "two", events[1].Prefix)
	assert.Equal(t, "NS2", events[1].URI)
	assert.Equal(t, event.QName{Namespace: "NS1", Local: "doc"}, events[2].Tag)
	assert.Equal(t, event.QName{Namespace: "NS2", Local: "item"}, events[3].Tag)

	// Declarations close in reverse order with the element that carried them.
	assert.Equal(t, "two", events[6].Prefix)
	assert.Equal(t, "", events[7].Prefix)
}

func TestXMLAttributes(t *testing.T) {
	events, err := event.Drain(XMLString(`<a href="#" title="x"/>`, "test"))
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, event.NewAttrs("href", "#", "title", "x"), events[0].Attrs)
}

func TestXMLCommentAndPI(t *testing.T) {
	doc := `<?xml version="1.0"?><doc><!-- note --><?php echo 1; ?></doc>`
	events, err := event.Drain(XMLString(doc, "test"))
	require.NoError(t, err)

	want := []event.Kind{event.Start, event.Comment, event.PI, event.End}
	require.Equal(t, want, kinds(events))
	assert.Equal(t, " note ", events[1].Text)
	assert.Equal(t, "php", events[2].Target)
	assert.Equal(t, "echo 1; ", events[2].Data)
}

func TestXMLDoctype(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want event.DocType
	}{
		{
			"public",
			`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd"><html/>`,
			event.DocType{
				Name:     "html",
				PublicID: "-//W3C//DTD HTML 4.01//EN",
				SystemID: "http://www.w3.org/TR/html4/strict.dtd",
			},
		},
		{
			"system",
			`<!DOCTYPE html SYSTEM "local.dtd"><html/>`,
			event.DocType{Name: "html", SystemID: "local.dtd"},
		},
		{
			"bare",
			`<!DOCTYPE html><html/>`,
			event.DocType{Name: "html"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := event.Drain(XMLString(tt.doc, "test"))
			require.NoError(t, err)
			require.NotEmpty(t, events)
			assert.Equal(t, event.Doctype, events[0].Kind)
			assert.Equal(t, tt.want, events[0].DocType)
		})
	}
}

func TestXMLParseErrorSurfacesThroughErr(t *testing.T) {
	events, err := event.Drain(XMLString(`<doc><open></doc>`, "broken.xml"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "broken.xml")
	assert.NotEmpty(t, events, "events before the failure are still delivered")
}

func TestXMLPositionsCarrySource(t *testing.T) {
	events, err := event.Drain(XMLString(`<doc/>`, "memo.xml"))
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, "memo.xml", events[0].Pos.Source)
}
