package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/nic-paul/sqlbind/core/logger"
	"github.com/nic-paul/sqlbind/core/template_engine"
	"github.com/spf13/cobra"
)

var (
	force bool
)

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Initialize a new functions workspace",
	Long:  `Creates the host and settings files a functions project needs before bindings can be added.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Debug("init called")
		dir := args[0]
		if _, err := os.Stat(dir); err == nil {
			if !force {
				fmt.Printf("Directory %s already exists. Use --force to overwrite.\n", dir)
				return nil
			}
			logger.Debug("Directory %s already exists. Overwriting.", dir)
			os.RemoveAll(dir)
		}

		initData := struct {
			ProjectName string
			Runtime     string
		}{
			ProjectName: filepath.Base(dir),
		}

		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		engine := template_engine.NewTemplateEngine()
		if err := engine.GenerateFolder(template_engine.TEMPLATES.INIT.Ref, dir, initData); err != nil {
			return fmt.Errorf("failed to generate workspace: %w", err)
		}

		// The embedded project file carries a placeholder name.
		placeholder := filepath.Join(dir, "ProjectName.csproj")
		projectFile := filepath.Join(dir, initData.ProjectName+".csproj")
		if err := os.Rename(placeholder, projectFile); err != nil {
			return fmt.Errorf("failed to name project file: %w", err)
		}

		fmt.Printf("Successfully generated workspace: %s\n", dir)
		fmt.Printf("Next Steps:\n")
		fmt.Printf("  - cd %s\n", dir)
		fmt.Printf("  - sqlbind add --connection-string <cs> --table <table>\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&force, "force", false, "Force overwrite existing files")
}
