package cli

import (
	"fmt"
	"regexp"

	"github.com/roster-dev/roster/internal/branding"
	"github.com/roster-dev/roster/internal/scaffold"
	"github.com/spf13/cobra"
)

// namePattern matches the entity name rule the manifest schema publishes.
var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

func init() {
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <skill|agent|command> <name>",
	Short: "Scaffold a new entity file",
	Long: `Write a frontmatter template for a new skill, agent, or command at its
conventional path inside the registry. Existing files are never overwritten.

The manifest is not touched; run "` + branding.CLIName() + ` sync" afterwards to register
the new entity.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := parseKind(args[0])
		if err != nil {
			return err
		}
		name := args[1]
		if !namePattern.MatchString(name) {
			return fmt.Errorf("invalid name %q: must be lowercase alphanumeric with hyphens", name)
		}

		dir, err := resolveRegistryDir()
		if err != nil {
			return err
		}

		relPath, err := scaffold.NewEntity(dir, kind, name)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", relPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Run %q to add it to the manifest.\n", branding.CLIName()+" sync")
		return nil
	},
}
