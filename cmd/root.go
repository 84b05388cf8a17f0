package cmd

import (
	"os"

	"github.com/nic-paul/sqlbind/core/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sqlbind",
	Short: "A CLI tool for wiring SQL bindings into serverless functions.",
	Long: `sqlbind scaffolds an Azure Functions function with a SQL input binding:
it drives the functions tooling to generate the function, references the
SQL bindings package, stores the connection string in local.settings.json
and rewrites the generated source to read from your table.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger.SetVerbose(verbose)
		if logfile != "" {
			f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return err
			}
			logger.AddWriterForAll(f)
		}
		return nil
	},
}

var logfile string
var verbose bool

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logfile, "logfile", "", "File to write logs to")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose output")
}
