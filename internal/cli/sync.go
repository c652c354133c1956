package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/roster-dev/roster/internal/branding"
	"github.com/roster-dev/roster/internal/bundle"
	"github.com/roster-dev/roster/internal/manifest"
	"github.com/roster-dev/roster/internal/registry"
	"github.com/spf13/cobra"
)

var (
	syncDryRun      bool
	syncCheck       bool
	syncSkipBundles bool
)

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the plan without writing any file")
	syncCmd.Flags().BoolVar(&syncCheck, "check", false, "Exit non-zero when the manifest is out of sync; write nothing")
	syncCmd.Flags().BoolVar(&syncSkipBundles, "skip-bundles", false, "Skip bundle regeneration after a writing sync")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reconcile the manifest with entity sources on disk",
	Long: `Scan the registry for skills, agents, and commands and reconcile the
manifest with what exists on disk.

Discovered entities missing from the manifest are appended from their
frontmatter; manifest entries without a source file are removed. Entries
present in both are kept verbatim: the manifest stays the source of truth
for curated fields, and version drift is only warned about.`,
	RunE: runSync,
}

func runSync(cmd *cobra.Command, args []string) error {
	dir, err := resolveRegistryDir()
	if err != nil {
		return err
	}

	plan, err := registry.BuildPlan(dir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, change := range plan.Changes {
		fmt.Fprintf(out, "  %s\n", change)
	}
	for _, warning := range plan.Warnings {
		fmt.Fprintf(out, "  %s %s\n", color.YellowString("warning:"), warning)
	}

	if !plan.Dirty() {
		fmt.Fprintln(out, "Manifest in sync.")
		if syncCheck || syncDryRun || syncSkipBundles {
			return nil
		}
		return writeBundles(cmd, dir)
	}

	if syncCheck {
		return fmt.Errorf("manifest out of sync (%d change(s)); run %q to update",
			len(plan.Changes), branding.CLIName()+" sync")
	}
	if syncDryRun {
		fmt.Fprintln(out, "Dry run: no files written.")
		return nil
	}

	if err := plan.Apply(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Updated %s (%d change(s))\n", plan.Path, len(plan.Changes))

	if syncSkipBundles {
		return nil
	}
	return writeBundles(cmd, dir)
}

// writeBundles regenerates every agent bundle from the freshly written
// manifest.
func writeBundles(cmd *cobra.Command, dir string) error {
	path, err := manifest.Find(dir)
	if err != nil {
		return err
	}
	doc, err := manifest.Load(path)
	if err != nil {
		return err
	}

	bundles, warnings, err := bundle.Compose(doc, dir, "", time.Now())
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", color.YellowString("warning:"), warning)
	}
	if err := bundle.Write(dir, bundles); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Regenerated %d bundle(s)\n", len(bundles))
	return nil
}
