package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/roster-dev/roster/internal/logger"
	"github.com/roster-dev/roster/internal/manifest"
	"github.com/roster-dev/roster/internal/validate"
	"github.com/roster-dev/roster/internal/watcher"
	"github.com/spf13/cobra"
)

var validateWatch bool

func init() {
	validateCmd.Flags().BoolVar(&validateWatch, "watch", false, "Re-run validation whenever registry files change")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry manifest",
	Long: `Validate the registry manifest for structural and referential integrity.

Checks required fields per entity kind, category references, skill/agent
dependency references, name uniqueness within each kind, and semver version
formats. All checks run to completion; every violation is reported in one
pass, one line per finding.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveRegistryDir()
		if err != nil {
			return err
		}
		if validateWatch {
			return watchValidate(cmd, dir)
		}
		return validateOnce(cmd, dir)
	},
}

// validateOnce runs the full validation pipeline over the manifest in dir.
// A load failure is fatal; validation findings go to stderr one per line and
// surface as a single summarizing error for the exit code.
func validateOnce(cmd *cobra.Command, dir string) error {
	path, err := manifest.Find(dir)
	if err != nil {
		return err
	}

	doc, err := manifest.Load(path)
	if err != nil {
		return err
	}

	report := validate.Check(doc)
	logger.Debugw("validation finished", "manifest", path, "findings", len(report.Findings))

	if report.Valid() {
		fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("Manifest valid (%d skills, %d agents, %d commands)",
			len(doc.Skills), len(doc.Agents), len(doc.Commands)))
		return nil
	}

	for _, line := range report.Lines() {
		fmt.Fprintln(cmd.ErrOrStderr(), line)
	}
	return fmt.Errorf("manifest has %d validation error(s)", len(report.Findings))
}

// watchValidate re-runs the validation on every settled change to the
// registry until interrupted. The exit status follows the last completed run.
func watchValidate(cmd *cobra.Command, dir string) error {
	w, err := watcher.New(watcher.Config{Dir: dir})
	if err != nil {
		return err
	}
	defer w.Stop()

	changes, err := w.Start()
	if err != nil {
		return err
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	run := func() error {
		fmt.Fprintf(cmd.OutOrStdout(), "--- %s\n", time.Now().UTC().Format("2006-01-02T15:04:05Z"))
		return validateOnce(cmd, dir)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (interrupt to stop)\n", dir)
	lastErr := run()

	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return lastErr
			}
			lastErr = run()
		case <-interrupt:
			return lastErr
		}
	}
}
