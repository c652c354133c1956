package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/roster-dev/roster/internal/bundle"
	"github.com/roster-dev/roster/internal/manifest"
	"github.com/spf13/cobra"
)

var (
	bundleAgent  string
	bundleDryRun bool
)

func init() {
	bundleCmd.Flags().StringVar(&bundleAgent, "agent", "", "Generate bundles for one agent only")
	bundleCmd.Flags().BoolVar(&bundleDryRun, "dry-run", false, "List target files with sizes without writing")
	rootCmd.AddCommand(bundleCmd)
}

var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Generate per-agent context bundles",
	Long: `Compose context bundles from each agent's skill dependencies.

Every agent gets a full bundle (skill bodies plus any layer files) and a
compact bundle (Quick Reference sections only) under bundles/. Skills
missing on disk produce warnings, not failures.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveRegistryDir()
		if err != nil {
			return err
		}
		path, err := manifest.Find(dir)
		if err != nil {
			return err
		}
		doc, err := manifest.Load(path)
		if err != nil {
			return err
		}

		bundles, warnings, err := bundle.Compose(doc, dir, bundleAgent, time.Now())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, warning := range warnings {
			fmt.Fprintf(out, "  %s %s\n", color.YellowString("warning:"), warning)
		}

		if bundleDryRun {
			for _, b := range bundles {
				fmt.Fprintf(out, "Would write: %s (%d bytes)\n", b.Path, len(b.Content))
			}
			return nil
		}

		if err := bundle.Write(dir, bundles); err != nil {
			return err
		}
		for _, b := range bundles {
			fmt.Fprintf(out, "Wrote: %s\n", b.Path)
		}
		return nil
	},
}
