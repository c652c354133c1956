package cli

import (
	"fmt"

	"github.com/roster-dev/roster/internal/manifest"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Lint the manifest against the published JSON schema",
	Long: `Check the manifest's shape against the embedded JSON Schema.

This is a stricter structural lint than "validate" (the schema also enforces
name patterns); the semantic checks of "validate" remain authoritative for
references, uniqueness, and versions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveRegistryDir()
		if err != nil {
			return err
		}
		path, err := manifest.Find(dir)
		if err != nil {
			return err
		}

		result, err := manifest.CheckSchemaFile(path)
		if err != nil {
			return err
		}

		if result.Valid {
			fmt.Fprintf(cmd.OutOrStdout(), "[ OK ] %s matches the manifest schema\n", path)
			return nil
		}

		for _, issue := range result.Issues {
			location := issue.Path
			if location == "" {
				location = "/"
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "[FAIL] %s: %s (%s)\n", location, issue.Message, issue.Keyword)
		}
		return fmt.Errorf("manifest failed schema lint with %d issue(s)", len(result.Issues))
	},
}
