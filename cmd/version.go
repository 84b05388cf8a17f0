package cmd

import (
	"fmt"

	"github.com/nic-paul/sqlbind/core/version"
	"github.com/spf13/cobra"
)

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the version of sqlbind",
	Long:  `Displays the version of sqlbind.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sqlbind %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
