package cli

import (
	"fmt"
	"os"

	"github.com/roster-dev/roster/internal/branding"
	"github.com/roster-dev/roster/internal/logger"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

// Persistent flags shared by every command.
var (
	flagDir   string
	flagDebug bool
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` validates and maintains the registry manifest that declares the
skills, agents, and commands available to an extensible assistant.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(flagDebug)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", "",
		"Registry directory (default: search upward for "+branding.RegistryDir()+")")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// Execute runs the root command with build info injected via ldflags. Cobra
// error printing is silenced, so the final error is printed exactly once here.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
