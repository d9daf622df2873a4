package main

import (
	"fmt"
	"os"

	"github.com/aretw0/groundwork/internal/cli"
	"github.com/aretw0/groundwork/pkg/config"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what a run would create",
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("blueprint")
		if path == "" {
			cfg, err := config.FromEnv()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			path = cfg.BlueprintPath
		}
		raw, _ := cmd.Flags().GetBool("raw")
		format, _ := cmd.Flags().GetString("format")

		if err := cli.RunPlan(os.Stdout, cli.PlanOptions{BlueprintPath: path, Format: format, Raw: raw}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().Bool("raw", false, "Print plain markdown even on a terminal")
	planCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format: markdown or mermaid")
}
