package cmd

import (
	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Export full chat history from the active workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(internal.ModeCurrent)
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)
}
