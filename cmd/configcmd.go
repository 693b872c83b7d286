package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mj1618/dock-cli/internal/config"
	"github.com/mj1618/dock-cli/internal/output"
)

// configResult is the output of the `config` command.
type configResult struct {
	Path   string         `yaml:"path"   json:"path"`
	Config *config.Config `yaml:"config" json:"config"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying the config file and DOCK_* environment
overrides, along with the file path it was read from.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return output.Fprint(cmd.OutOrStdout(), configResult{Path: configPath(), Config: cfg})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
