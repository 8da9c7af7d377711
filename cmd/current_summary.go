package cmd

import (
	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var currentSummaryCmd = &cobra.Command{
	Use:   "current-summary",
	Short: "Export only your questions, from the active workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(internal.ModeCurrentSummary)
	},
}

func init() {
	rootCmd.AddCommand(currentSummaryCmd)
}
