package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/dock-cli/internal/dock"
	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/output"
	"github.com/mj1618/dock-cli/internal/platform/darwin"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "List dock items showing a notification badge",
	Long: `Reconcile the dock once and print the items whose tile shows a notification
badge, with their counts. Reading badges needs the Accessibility permission.`,
	RunE: runBadges,
}

func init() {
	rootCmd.AddCommand(badgesCmd)
}

func runBadges(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger("badges")
	if err := darwin.CheckAccessibilityPermission(); err != nil {
		logger.Warn(err.Error())
	}

	snap := dock.NewSnapshotDelegate(nil)
	engine, err := newEngine(snap, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	if _, err := engine.ReloadOnce(ctx); err != nil {
		logger.WithError(err).Warn("Dock state is incomplete")
	}

	return output.Fprint(cmd.OutOrStdout(), output.BadgesResult{
		TS:    time.Now().Unix(),
		Items: output.BadgeEntries(snap.Badged()),
	})
}
