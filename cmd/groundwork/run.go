package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/groundwork/internal/cli"
	"github.com/aretw0/groundwork/pkg/config"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Provision both workspaces",
	Long: `Runs the credential check, then creates the Notion page tree and the ClickUp
space and lists. Failures of individual calls are logged and do not change the
exit code.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		debug, _ := cmd.Flags().GetBool("debug")
		opts := cli.RunOptions{Debug: debug}
		opts.BlueprintPath, _ = cmd.Flags().GetString("blueprint")
		opts.SandboxURL, _ = cmd.Flags().GetString("sandbox")
		opts.RedisURL, _ = cmd.Flags().GetString("redis")
		opts.MetricsFile, _ = cmd.Flags().GetString("metrics-file")
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.GraphFile, _ = cmd.Flags().GetString("graph")
		opts.Quiet, _ = cmd.Flags().GetBool("quiet")

		logger := cli.NewLogger(debug)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if _, err := cli.Execute(ctx, cfg, opts, os.Stdout, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Persistent so that the bare root command, which runs provisioning, accepts them too.
	rootCmd.PersistentFlags().String("sandbox", "", "Base URL of a groundwork sandbox to provision against")
	rootCmd.PersistentFlags().String("redis", "", "Redis URL for the run lock (default: GROUNDWORK_REDIS_URL)")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	rootCmd.PersistentFlags().Bool("dry-run", false, "Provision into an in-memory workspace instead of the real services")
	rootCmd.PersistentFlags().String("graph", "", "Write a Mermaid chart of the run, styled by outcome, to this file")
	runCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")

	rootCmd.Run = runCmd.Run
}
