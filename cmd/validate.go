package cmd

import (
	"fmt"
	"os"

	"conductor/internal/api"
	"conductor/internal/catalog"
	"conductor/internal/config"
	"conductor/internal/manifest"
	"conductor/internal/validation"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	validateConfigPath string
	validateManifest   string
)

// validateCmd checks the capability manifest, and optionally a strategy
// file against it, without executing anything.
var validateCmd = &cobra.Command{
	Use:   "validate [strategy-file]",
	Short: "Validate the capability manifest and, optionally, a strategy file",
	Long: `Validates the capability manifest structurally: unique ids, resolvable
undo references and well-formed parameter declarations.

When a strategy file is given, every step is additionally checked against
the manifest: known capability ids, required parameters present, declared
types and constraints respected. Parameters collected on demand may be
absent; they are gathered at execution time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := validateManifest
		if path == "" {
			configPath := validateConfigPath
			if configPath == "" {
				configPath = config.GetDefaultConfigPathOrPanic()
			}
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			path = cfg.Manifest
		}

		m, err := manifest.Load(path)
		if err != nil {
			return err
		}
		directory, err := catalog.New(m)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "manifest %s: %d capabilities, OK\n", path, len(directory.Capabilities()))

		if len(args) == 0 {
			return nil
		}

		strat, err := loadStrategyFile(args[0])
		if err != nil {
			return err
		}
		if errs := validation.ValidatePlan(strat, directory); len(errs) > 0 {
			for _, msg := range errs {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", msg)
			}
			return fmt.Errorf("strategy %s: %d validation error(s)", args[0], len(errs))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "strategy %s: %d steps, OK\n", args[0], len(strat))
		return nil
	},
}

// loadStrategyFile reads a YAML strategy file: a list of steps, each with a
// capability id and optional parameters.
func loadStrategyFile(path string) (api.Strategy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read strategy file: %w", err)
	}
	var strat api.Strategy
	if err := yaml.Unmarshal(data, &strat); err != nil {
		return nil, fmt.Errorf("failed to parse strategy file %s: %w", path, err)
	}
	return strat, nil
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateConfigPath, "config-path", "", "Configuration directory (default: ~/.config/conductor)")
	validateCmd.Flags().StringVar(&validateManifest, "manifest", "", "Capability manifest file (overrides configuration)")
}
