package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "groundwork",
	Short: "groundwork provisions a Notion page tree and a ClickUp space in one pass",
	Long: `groundwork creates a predefined page hierarchy in Notion and a space with
lists in ClickUp. Credentials are read from NOTION_API_KEY and CLICKUP_API_KEY;
a workspace whose credential is missing is skipped.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("blueprint", "", "Blueprint YAML file (default: built-in, or GROUNDWORK_BLUEPRINT)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
