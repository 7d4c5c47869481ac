package transform_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/weft/builder"
	"github.com/teranos/weft/errors"
	"github.com/teranos/weft/event"
	"github.com/teranos/weft/input"
	"github.com/teranos/weft/output"
	"github.com/teranos/weft/path"
	"github.com/teranos/weft/transform"
)

const bodyDoc = `<html><body>Some <em>body</em> text.</body></html>`

func apply(t *testing.T, doc string, tr *transform.Transformer) string {
	t.Helper()
	out, err := output.Render(output.NewXML(output.Options{}), tr.Transform(input.XMLString(doc, "test")))
	require.NoError(t, err)
	return out
}

func selected(expr string) *transform.Transformer {
	return transform.New(path.MustParse(expr).Selector())
}

func TestTransformPassthrough(t *testing.T) {
	assert.Equal(t, bodyDoc, apply(t, bodyDoc, &transform.Transformer{}))
}

func TestTransformRemove(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//em").Remove())
	assert.Equal(t, `<html><body>Some  text.</body></html>`, got)
}

func TestTransformUnwrap(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//em").Unwrap())
	assert.Equal(t, `<html><body>Some body text.</body></html>`, got)
}

func TestTransformEmpty(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//em").Empty())
	assert.Equal(t, `<html><body>Some <em/> text.</body></html>`, got)
}

func TestTransformInvertRemove(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//em").Invert().Remove())
	assert.Equal(t, `<em>body</em>`, got, "inverting then removing keeps only the selection")
}

func TestTransformWrapUnwrapRoundTrip(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//em").Wrap("em").Unwrap())
	assert.Equal(t, bodyDoc, got, "wrapping in the same tag and unwrapping restores the document")
}

func TestTransformWrapElementTemplate(t *testing.T) {
	tpl := builder.El("span").Attr("class", "emph")
	got := apply(t, bodyDoc, selected(".//em").Wrap(tpl))
	assert.Equal(t, `<html><body>Some <span class="emph"><em>body</em></span> text.</body></html>`, got)
}

func TestTransformReplaceElement(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//em").Replace("emphasis"))
	assert.Equal(t, `<html><body>Some emphasis text.</body></html>`, got)
}

func TestTransformReplaceText(t *testing.T) {
	doc := `<html><head><title>Some Title</title></head><body/></html>`
	got := apply(t, doc, selected("head/title/text()").Replace("New Title"))
	assert.Equal(t, `<html><head><title>New Title</title></head><body/></html>`, got)
}

func TestTransformBeforeAfter(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//em").Before("emphasised "))
	assert.Equal(t, `<html><body>Some emphasised <em>body</em> text.</body></html>`, got)

	got = apply(t, bodyDoc, selected(".//em").After(" indeed"))
	assert.Equal(t, `<html><body>Some <em>body</em> indeed text.</body></html>`, got)
}

func TestTransformPrependAppend(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//body").Prepend("PRE "))
	assert.Equal(t, `<html><body>PRE Some <em>body</em> text.</body></html>`, got)

	got = apply(t, bodyDoc, selected(".//body").Append(" POST"))
	assert.Equal(t, `<html><body>Some <em>body</em> text. POST</body></html>`, got)
}

func TestTransformSetAttr(t *testing.T) {
	got := apply(t, bodyDoc, selected(".//em").SetAttr("class", "emphasis"))
	assert.Equal(t, `<html><body>Some <em class="emphasis">body</em> text.</body></html>`, got)
}

func TestTransformDelAttr(t *testing.T) {
	doc := `<html><body><em class="emphasis">body</em></body></html>`
	got := apply(t, doc, selected(".//em").DelAttr("class"))
	assert.Equal(t, `<html><body><em>body</em></body></html>`, got)
}

func TestTransformApplyUppercase(t *testing.T) {
	upper := func(ev event.Event) event.Event {
		ev.Text = "SOME TITLE"
		return ev
	}
	doc := `<html><head><title>Some Title</title></head><body/></html>`
	got := apply(t, doc, selected("head/title").Apply(upper, event.Text))
	assert.Equal(t, `<html><head><title>SOME TITLE</title></head><body/></html>`, got)
}

func TestTransformCopyLeavesStreamIntact(t *testing.T) {
	buf := transform.NewBuffer()
	doc := `<html><head><title>Some Title</title></head><body/></html>`
	got := apply(t, doc, selected("head/title/text()").Copy(buf))

	assert.Equal(t, doc, got)
	captured := buf.Events()
	require.Len(t, captured, 1)
	assert.Equal(t, "Some Title", captured[0].Text)
}

func TestTransformCutAndPaste(t *testing.T) {
	buf := transform.NewBuffer()
	doc := `<html><head><title>Some Title</title></head><body>Some <em>body</em> text.</body></html>`
	tr := selected("head/title/text()").
		Cut(buf).
		Select(path.MustParse(".//body").Selector()).
		Prepend(builder.El("h1", buf))

	got := apply(t, doc, tr)
	assert.Equal(t,
		`<html><head><title/></head><body><h1>Some Title</h1>Some <em>body</em> text.</body></html>`,
		got, "the buffer is injected with its contents from the same pass")
}

func TestTransformChainedSelectionsAccumulate(t *testing.T) {
	doc := `<r><em>x</em><b>y</b></r>`
	tr := selected(".//em").
		Select(path.MustParse(".//b").Selector()).
		Prepend("!")

	got := apply(t, doc, tr)
	assert.Equal(t, `<r><em>!x</em><b>!y</b></r>`, got,
		"the first selection stays in force alongside the second")
}

func TestTransformSurfacesMalformedInput(t *testing.T) {
	truncated := []event.Event{
		event.StartElement(event.Name("r"), nil, event.NoPos),
		event.StartElement(event.Name("a"), nil, event.NoPos),
	}
	tr := selected(".//a")
	_, err := event.Drain(tr.Transform(event.FromSlice(truncated)))
	assert.True(t, errors.Is(err, transform.ErrStreamConsistency))
}
