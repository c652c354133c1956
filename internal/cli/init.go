package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roster-dev/roster/internal/branding"
	"github.com/roster-dev/roster/internal/scaffold"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a new registry",
	Long: `Create the registry skeleton: a default manifest with the standard
categories, plus empty skills/, agents/, commands/, and bundles/ directories.

Without --dir, the registry is created at ./` + branding.RegistryDir() + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := flagDir
		if dir == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("getting current directory: %w", err)
			}
			dir = filepath.Join(cwd, branding.RegistryDir())
		}

		created, err := scaffold.InitRegistry(dir)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, path := range created {
			fmt.Fprintf(out, "  created %s\n", path)
		}
		fmt.Fprintf(out, "Registry initialized at %s\n", dir)
		fmt.Fprintf(out, "Add entities with %q, then run %q.\n",
			branding.CLIName()+" new", branding.CLIName()+" sync")
		return nil
	},
}
