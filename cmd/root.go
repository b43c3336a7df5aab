package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the conductor application.
// It is the entry point when the application is called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "conductor",
	Short: "Expose an application's capabilities to AI planners",
	Long: `conductor turns a declarative capability manifest into an execution
engine: it validates planner intents, gates them on preconditions, runs the
backing tools with bounded timeouts, and orchestrates multi-step strategies
with pause/resume and transactional rollback. The engine is served over the
Model Context Protocol on stdio.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "conductor version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
