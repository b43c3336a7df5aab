package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"conductor/internal/app"
	"conductor/internal/config"
	"conductor/pkg/logging"

	"github.com/spf13/cobra"
)

// serveDebug enables verbose logging across the application.
var serveDebug bool

// serveConfigPath specifies a custom configuration directory path.
// The directory should contain config.yaml and the capability manifest.
var serveConfigPath string

// serveCmd starts the MCP stdio server over the configured capability
// manifest and tool bridge.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the capability engine over MCP on stdio",
	Long: `Loads the capability manifest, connects the configured tool bridge,
and serves the execution engine over the Model Context Protocol on
stdin/stdout. Log output goes to stderr.

The manifest is watched for changes; edits that pass validation are applied
to the running catalog without a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath := serveConfigPath
	if configPath == "" {
		configPath = config.GetDefaultConfigPathOrPanic()
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if serveDebug {
		level = logging.LevelDebug
	}
	// Stdout carries the MCP protocol; everything else goes to stderr.
	logging.Init(level, os.Stderr)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.Build(ctx, cfg, GetVersion())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	return application.Run(ctx)
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Configuration directory (default: ~/.config/conductor)")
}
