package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/weft/config"
)

// ConfigCmd manages the rendering profile.
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the weft rendering profile",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default weft.toml",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "weft.toml"
		if len(args) == 1 {
			target = args[0]
		}
		cfg := &config.Config{Format: "xml", StripWhitespace: true}
		if err := cfg.Save(target); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show the effective rendering profile",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := ""
		if len(args) == 1 {
			configPath = args[0]
		}
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "format           = %s\n", cfg.Format)
		fmt.Fprintf(cmd.OutOrStdout(), "doctype          = %q\n", cfg.Doctype)
		fmt.Fprintf(cmd.OutOrStdout(), "strip_whitespace = %v\n", cfg.StripWhitespace)
		for uri, prefix := range cfg.Prefixes {
			fmt.Fprintf(cmd.OutOrStdout(), "prefixes.%q = %q\n", uri, prefix)
		}
		return nil
	},
}

func init() {
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configShowCmd)
}
