package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/teranos/weft/config"
	"github.com/teranos/weft/errors"
	"github.com/teranos/weft/event"
	"github.com/teranos/weft/input"
	"github.com/teranos/weft/output"
	"github.com/teranos/weft/path"
	"github.com/teranos/weft/transform"
)

// RenderCmd reads an XML document, optionally applies transformations to
// a selected region, and serializes the result.
var RenderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Transform and serialize a markup document",
	Long: `render — Transform a markup document and serialize it.

Reads XML from a file (or stdin when no file is given), optionally
applies transformations to the events selected by --select, and writes
the serialized result to stdout.

Examples:
  weft render page.xml --format html
  weft render page.xml --select 'head/title' --replace 'New Title'
  weft render page.xml --select './/em' --set-attr class=emphasis
  cat page.xml | weft render --format text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

var (
	renderConfigFlag  string
	renderFormatFlag  string
	renderSelectFlag  string
	renderRemoveFlag  bool
	renderEmptyFlag   bool
	renderUnwrapFlag  bool
	renderWrapFlag    string
	renderReplaceFlag string
	renderBeforeFlag  string
	renderAfterFlag   string
	renderPrependFlag string
	renderAppendFlag  string
	renderSetAttrFlag []string
	renderDelAttrFlag []string
)

func init() {
	f := RenderCmd.Flags()
	f.StringVar(&renderConfigFlag, "config", "", "TOML configuration file with the output profile")
	f.StringVar(&renderFormatFlag, "format", "", "Output format: xml, xhtml, html or text (overrides config)")
	f.StringVar(&renderSelectFlag, "select", "", "Path expression selecting the events to transform")
	f.BoolVar(&renderRemoveFlag, "remove", false, "Remove the selection")
	f.BoolVar(&renderEmptyFlag, "empty", false, "Empty the selected elements")
	f.BoolVar(&renderUnwrapFlag, "unwrap", false, "Remove the selected elements, keeping their content")
	f.StringVar(&renderWrapFlag, "wrap", "", "Wrap the selection in the named element")
	f.StringVar(&renderReplaceFlag, "replace", "", "Replace the selection with the given text")
	f.StringVar(&renderBeforeFlag, "before", "", "Insert text before the selection")
	f.StringVar(&renderAfterFlag, "after", "", "Insert text after the selection")
	f.StringVar(&renderPrependFlag, "prepend", "", "Insert text as the first child of selected elements")
	f.StringVar(&renderAppendFlag, "append", "", "Insert text as the last child of selected elements")
	f.StringArrayVar(&renderSetAttrFlag, "set-attr", nil, "Set attribute name=value on selected elements (repeatable)")
	f.StringArrayVar(&renderDelAttrFlag, "del-attr", nil, "Delete the named attribute from selected elements (repeatable)")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(renderConfigFlag)
	if err != nil {
		return err
	}
	if renderFormatFlag != "" {
		cfg.Format = renderFormatFlag
	}

	stream, source, cleanup, err := openInput(args)
	if err != nil {
		return err
	}
	defer cleanup()

	t, err := buildTransformer()
	if err != nil {
		return err
	}
	if t != nil {
		stream = t.Transform(stream)
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	serializer, err := serializerFor(cfg.Format, opts)
	if err != nil {
		return err
	}

	text, err := output.Render(serializer, stream)
	if err != nil {
		return errors.Wrapf(err, "rendering %s", source)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func openInput(args []string) (event.Stream, string, func(), error) {
	if len(args) == 0 {
		return input.XML(os.Stdin, "<stdin>"), "<stdin>", func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, "", nil, errors.Wrapf(err, "opening %s", args[0])
	}
	return input.XML(f, args[0]), args[0], func() { f.Close() }, nil
}

func buildTransformer() (*transform.Transformer, error) {
	if renderSelectFlag == "" {
		return nil, nil
	}
	p, err := path.Parse(renderSelectFlag)
	if err != nil {
		return nil, err
	}
	t := transform.New(p.Selector())
	switch {
	case renderRemoveFlag:
		t = t.Remove()
	case renderEmptyFlag:
		t = t.Empty()
	case renderUnwrapFlag:
		t = t.Unwrap()
	case renderWrapFlag != "":
		t = t.Wrap(renderWrapFlag)
	case renderReplaceFlag != "":
		t = t.Replace(renderReplaceFlag)
	}
	if renderBeforeFlag != "" {
		t = t.Before(renderBeforeFlag)
	}
	if renderAfterFlag != "" {
		t = t.After(renderAfterFlag)
	}
	if renderPrependFlag != "" {
		t = t.Prepend(renderPrependFlag)
	}
	if renderAppendFlag != "" {
		t = t.Append(renderAppendFlag)
	}
	for _, spec := range renderSetAttrFlag {
		name, value, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, errors.Newf("--set-attr expects name=value, got %q", spec)
		}
		t = t.SetAttr(name, value)
	}
	for _, name := range renderDelAttrFlag {
		t = t.DelAttr(name)
	}
	return t, nil
}

func serializerFor(format string, opts output.Options) (output.Serializer, error) {
	switch strings.ToLower(format) {
	case "xml":
		return output.NewXML(opts), nil
	case "xhtml":
		return output.NewXHTML(opts), nil
	case "html":
		return output.NewHTML(opts), nil
	case "text":
		return output.NewText(), nil
	default:
		return nil, errors.Newf("unknown output format %q", format)
	}
}
