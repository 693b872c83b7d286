package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List dock items",
	Long: `List dock items: pinned entries in dock order, followed by running applications
that are not pinned. Each item shows its identity, name, pid when running, and
badge when set.`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("running", false, "Only items with a running process")
	listCmd.Flags().Bool("persistent", false, "Only pinned items")
	listCmd.Flags().Bool("badged", false, "Only items with a non-zero badge")
	listCmd.Flags().String("kind", "", "Comma-separated kinds: app, file, directory, trash")
	listCmd.Flags().String("text", "", "Case-insensitive match on name or identity")
}

func itemFilterFromFlags(cmd *cobra.Command) model.ItemFilter {
	running, _ := cmd.Flags().GetBool("running")
	persistent, _ := cmd.Flags().GetBool("persistent")
	badged, _ := cmd.Flags().GetBool("badged")
	kind, _ := cmd.Flags().GetString("kind")
	text, _ := cmd.Flags().GetString("text")
	return model.ItemFilter{
		Running:    running,
		Persistent: persistent,
		Badged:     badged,
		Kinds:      model.ParseKinds(kind),
		Text:       text,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	engine, err := newEngine(nil, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	items, reloadErr := engine.ReloadOnce(ctx)

	result := output.ListResult{
		Domain: cfg.Domain,
		TS:     time.Now().Unix(),
		Items:  model.FilterItems(items, itemFilterFromFlags(cmd)),
	}
	if reloadErr != nil {
		logging.NewLogger("list").WithError(reloadErr).Warn("Dock state is incomplete")
		result.Errors = []string{reloadErr.Error()}
	}
	return output.Fprint(cmd.OutOrStdout(), result)
}
