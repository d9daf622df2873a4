package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aretw0/groundwork/internal/logging"
	"github.com/aretw0/groundwork/pkg/adapters/mcp"
	"github.com/aretw0/groundwork/pkg/adapters/sandbox"
	"github.com/aretw0/groundwork/pkg/blueprint"
	"github.com/aretw0/groundwork/pkg/config"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Serves the plan and provision tools over stdio, so an AI agent can inspect
the blueprint and trigger a run. Credentials come from the environment, as for run.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.FromEnv()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if sandboxURL, _ := cmd.Flags().GetString("sandbox"); sandboxURL != "" {
			cfg = cfg.WithSandbox(sandboxURL, sandbox.DefaultRootID)
		}

		path, _ := cmd.Flags().GetString("blueprint")
		if path == "" {
			path = cfg.BlueprintPath
		}
		bp, err := blueprint.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Stdout carries JSON-RPC.
		log.SetOutput(os.Stderr)
		logger := logging.NewWithWriter(os.Stderr, slog.LevelInfo)

		srv := mcp.NewServer(cfg, bp)
		logger.Info("Starting groundwork MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			logger.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
