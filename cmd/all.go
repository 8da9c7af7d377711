package cmd

import (
	"github.com/iksnae/cursor-chat-export/internal"
	"github.com/spf13/cobra"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Export full chat history from every workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(internal.ModeAll)
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
}
