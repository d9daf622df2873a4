package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/groundwork/internal/cli"
	"github.com/spf13/cobra"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Serve a local emulation of the Notion and ClickUp endpoints",
	Long: `Starts an HTTP server that emulates the endpoints groundwork calls, under
/notion/v1 and /clickup/api/v2. Point a run at it with --sandbox.

With --db the emulated workspaces survive restarts, which shows how a second run
reuses the space and creates every list again.`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		db, _ := cmd.Flags().GetString("db")
		fail, _ := cmd.Flags().GetStringSlice("fail-page")
		debug, _ := cmd.Flags().GetBool("debug")

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		opts := cli.SandboxOptions{Addr: addr, DBPath: db, FailTitles: fail}
		if err := cli.RunSandbox(ctx, opts, cli.NewLogger(debug), nil); err != nil {
			fmt.Fprintf(os.Stderr, "Sandbox error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(sandboxCmd)
	sandboxCmd.Flags().StringP("addr", "a", "127.0.0.1:8089", "Address to listen on")
	sandboxCmd.Flags().String("db", "", "SQLite file for the emulated workspaces (default: in memory)")
	sandboxCmd.Flags().StringSlice("fail-page", nil, "Page titles whose creation should fail (repeatable)")
}
