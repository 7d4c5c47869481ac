package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/weft/cmd/weft/commands"
	"github.com/teranos/weft/logger"
)

var jsonFlag bool

var rootCmd = &cobra.Command{
	Use:   "weft",
	Short: "weft - markup event-stream transformation and serialization",
	Long: `weft - Transform and serialize markup event streams.

weft parses XML into a stream of structural events, marks regions of the
stream with path-expression selections, applies composable
transformations (remove, wrap, replace, attribute edits, ...) and
serializes the result as XML, XHTML, HTML or plain text.

Examples:
  weft render page.xml --format html
  weft render page.xml --select './/em' --wrap strong
  weft trace page.xml --select 'body//em'
  weft config init`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(jsonFlag); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit logs as JSON")
	rootCmd.AddCommand(commands.RenderCmd)
	rootCmd.AddCommand(commands.TraceCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
