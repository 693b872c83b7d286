package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/output"
)

var launchCmd = &cobra.Command{
	Use:   "launch <identity>",
	Short: "Launch a dock item",
	Long: `Launch an application by bundle identifier, or open a file or folder given as
a file:// identity or an absolute path.

Examples:
  dock-cli launch com.apple.Safari
  dock-cli launch file:///Users/me/Downloads
  dock-cli launch /Users/me/Downloads`,
	Args: cobra.ExactArgs(1),
	RunE: runLaunch,
}

func init() {
	rootCmd.AddCommand(launchCmd)
}

// parseIdentity accepts bundle identifiers, file:// URLs and absolute paths.
func parseIdentity(arg string) model.Identity {
	if len(arg) > 0 && arg[0] == '/' {
		return model.FileIdentity(arg)
	}
	return model.Identity(arg)
}

func runLaunch(cmd *cobra.Command, args []string) error {
	id := parseIdentity(args[0])
	engine, err := newEngine(nil, nil)
	if err != nil {
		return err
	}

	result := output.LaunchResult{Action: output.LaunchAction(id), Identity: id}
	if !engine.Launch(id) {
		result.Error = fmt.Sprintf("the system did not accept %s", id)
		if err := output.Fprint(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		return fmt.Errorf("launch %s failed", id)
	}
	result.OK = true
	return output.Fprint(cmd.OutOrStdout(), result)
}
