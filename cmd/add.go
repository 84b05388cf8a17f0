package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/nic-paul/sqlbind/core/config"
	"github.com/nic-paul/sqlbind/core/functions"
	"github.com/nic-paul/sqlbind/core/models"
	"github.com/nic-paul/sqlbind/core/nuget"
	"github.com/nic-paul/sqlbind/core/orchestrator"
	"github.com/nic-paul/sqlbind/core/prompt"
	"github.com/nic-paul/sqlbind/core/runner"
	"github.com/nic-paul/sqlbind/core/workspace"
	"github.com/spf13/cobra"
)

var (
	connectionString string
	schema           string
	table            string
	functionName     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a function with a SQL input binding to the open project",
	Long: `Scaffolds a new function in the functions project under the current
directory and installs a SQL input binding for the given table.

The package reference and the settings entry are idempotent; the
scaffolding step is not, so re-running after a partial failure may create
a duplicate function.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		execRunner := runner.NewExecRunner()
		binder := orchestrator.NewBinder(
			workspace.NewDirContext(wd),
			functions.NewCoreToolsProvider(execRunner, cfg),
			nuget.NewClient(execRunner, cfg),
			prompt.NewTerminalPrompter(),
			cfg,
		)

		req := models.GenerationRequest{
			ConnectionString: connectionString,
			Schema:           schema,
			Table:            table,
			FunctionName:     functionName,
		}

		err = binder.Generate(context.Background(), req)
		switch {
		case errors.Is(err, workspace.ErrNotOpen):
			fmt.Printf("%s A functions project must be opened: run from a directory containing a project file and host.json, or run %s first.\n",
				color.New(color.FgYellow).Sprint("!"), color.New(color.FgCyan).Sprint("sqlbind init"))
			return nil
		case errors.Is(err, functions.ErrUnavailable):
			fmt.Printf("%s The Azure Functions Core Tools are not installed; install them and retry.\n",
				color.New(color.FgYellow).Sprint("!"))
			return nil
		case err != nil:
			return err
		}

		fmt.Printf("%s SQL input binding added for %s.%s\n",
			color.New(color.FgGreen).Sprint("✓"), schema, table)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&connectionString, "connection-string", "", "SQL connection string stored in local.settings.json")
	addCmd.Flags().StringVar(&schema, "schema", "dbo", "Schema of the table to bind")
	addCmd.Flags().StringVar(&table, "table", "", "Table to bind")
	addCmd.Flags().StringVar(&functionName, "name", "", "Function name (prompted when omitted)")
	addCmd.MarkFlagRequired("connection-string")
	addCmd.MarkFlagRequired("table")
}
