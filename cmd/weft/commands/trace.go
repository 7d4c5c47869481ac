package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/weft/event"
	"github.com/teranos/weft/path"
	"github.com/teranos/weft/transform"
)

// TraceCmd shows the marked event stream for a selection, for debugging
// path expressions and transformation pipelines.
var TraceCmd = &cobra.Command{
	Use:   "trace [file]",
	Short: "Dump the marked event stream for a selection",
	Long: `trace — Dump the marked event stream for a selection.

Parses the document, applies the selection stage and prints every
(mark, event) pair. Useful for understanding what a path expression
actually selects before attaching transformations to it.

Examples:
  weft trace page.xml --select 'body//em'
  weft trace page.xml --select 'head/title/text()'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTrace,
}

var traceSelectFlag string

func init() {
	TraceCmd.Flags().StringVar(&traceSelectFlag, "select", "", "Path expression to trace (required)")
	_ = TraceCmd.MarkFlagRequired("select")
}

var markStyles = map[transform.Mark]pterm.Color{
	transform.MarkNone:    pterm.FgGray,
	transform.MarkEnter:   pterm.FgGreen,
	transform.MarkInside:  pterm.FgCyan,
	transform.MarkExit:    pterm.FgYellow,
	transform.MarkOutside: pterm.FgMagenta,
}

func runTrace(cmd *cobra.Command, args []string) error {
	p, err := path.Parse(traceSelectFlag)
	if err != nil {
		return err
	}

	stream, _, cleanup, err := openInput(args)
	if err != nil {
		return err
	}
	defer cleanup()

	t := transform.New(p.Selector()).Then(func(in *transform.Cursor) *transform.Cursor {
		return in.Derive(func() (transform.MarkedEvent, bool) {
			me, ok := in.Next()
			if !ok {
				return transform.MarkedEvent{}, false
			}
			style := markStyles[me.Mark]
			pterm.Printf("%s %s\n", style.Sprintf("%-7s", me.Mark), me.Event)
			return me, true
		})
	})

	_, err = event.Drain(t.Transform(stream))
	return err
}
