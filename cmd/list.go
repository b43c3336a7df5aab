package cmd

import (
	"os"

	"conductor/internal/catalog"
	"conductor/internal/config"
	"conductor/internal/formatting"
	"conductor/internal/manifest"

	"github.com/spf13/cobra"
)

var (
	listConfigPath string
	listManifest   string
	listOutput     string
)

// listCmd prints the capability graph from the manifest. It reads the
// manifest directly and needs no running server or tool bridge.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the capabilities declared in the manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := formatting.ParseFormat(listOutput)
		if err != nil {
			return err
		}

		path := listManifest
		if path == "" {
			configPath := listConfigPath
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
		return formatting.WriteGraph(os.Stdout, directory.Graph(), format)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVar(&listConfigPath, "config-path", "", "Configuration directory (default: ~/.config/conductor)")
	listCmd.Flags().StringVar(&listManifest, "manifest", "", "Capability manifest file (overrides configuration)")
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "Output format: table, json or yaml")
}
