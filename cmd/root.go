package cmd

import (
	"os"

	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var (
	version string = "dev"
	commit  string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cursor-chat-export",
	Short: "Export Cursor IDE chat history as HTML",
	Long: `Export chat history from Cursor IDE's local storage as standalone HTML files.

The exporter reads Cursor's state databases directly and writes a styled,
self-contained HTML document per run. No flags are needed, each subcommand
is one export mode. Settings such as the export directory live in a config
file (or CURSOR_CHAT_EXPORT_* environment variables).

Quick Start:
  cursor-chat-export current          # Export the active workspace's chats
  cursor-chat-export all              # Export chats from every workspace
  cursor-chat-export summary          # Export only your questions, all workspaces
  cursor-chat-export current-summary  # Export only your questions, active workspace`,
	Version:       version + " (commit: " + commit + ")",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(err.Error())
		os.Exit(1)
	}
}
