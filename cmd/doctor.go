package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/fatih/color"
	"github.com/nic-paul/sqlbind/core/workspace"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the workspace and external tooling are ready",
	Long:  "Verifies the current directory holds a functions project and that the dotnet and func binaries are on PATH.",
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}

		ok := color.New(color.FgGreen).Sprint("✓")
		bad := color.New(color.FgRed).Sprint("✗")

		ws := workspace.NewDirContext(wd)
		if pc, found, _ := workspace.Resolve(ws); found {
			fmt.Printf("%s functions project (%s)\n", ok, pc.ProjectFileDir)
		} else {
			fmt.Printf("%s functions project: no project file or host.json under %s\n", bad, wd)
		}

		for _, binary := range []string{"dotnet", "func"} {
			if path, err := exec.LookPath(binary); err == nil {
				fmt.Printf("%s %s (%s)\n", ok, binary, path)
			} else {
				fmt.Printf("%s %s: not found on PATH\n", bad, binary)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
