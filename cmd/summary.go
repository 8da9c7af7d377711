package cmd

import (
	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Export only your questions, from every workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(internal.ModeSummary)
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
