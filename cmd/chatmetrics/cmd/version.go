package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags "-X chatmetrics/cmd/chatmetrics/cmd.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the chatmetrics version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chatmetrics " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
