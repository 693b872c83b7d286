package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/output"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Show dock changes since the previous run",
	Long: `Reload the dock and compare it with the snapshot saved by the previous diff.
The first run (or a run after the snapshot expired) records a baseline and
reports no changes. The new state is saved unless --no-save is given.`,
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
	diffCmd.Flags().String("snapshot-dir", "", "Directory for snapshot files (default: system temp dir)")
	diffCmd.Flags().Duration("max-age", 24*time.Hour, "Treat older snapshots as missing (0 = never expire)")
	diffCmd.Flags().Bool("no-save", false, "Do not update the saved snapshot")
}

func runDiff(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("snapshot-dir")
	maxAge, _ := cmd.Flags().GetDuration("max-age")
	noSave, _ := cmd.Flags().GetBool("no-save")
	logger := logging.NewLogger("diff")

	path := model.SnapshotPath(dir, cfg.Domain)
	prev, ok, err := model.LoadSnapshot(path)
	if err != nil {
		logger.WithError(err).Warn("Ignoring unreadable snapshot")
		ok = false
	}
	now := time.Now()
	if ok && prev.IsStale(now, maxAge) {
		logger.WithField("path", path).Debug("Snapshot expired")
		ok = false
	}

	engine, err := newEngine(nil, nil)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	items, reloadErr := engine.ReloadOnce(ctx)

	result := output.DiffResult{
		Domain:   cfg.Domain,
		TS:       now.Unix(),
		Baseline: !ok,
		Changes:  []model.ItemChange{},
	}
	if ok {
		result.Since = prev.TS
		if changes := model.DiffItems(prev.Items, items); changes != nil {
			result.Changes = changes
		}
	}
	if reloadErr != nil {
		logger.WithError(reloadErr).Warn("Dock state is incomplete")
		result.Errors = []string{reloadErr.Error()}
	}

	// An incomplete reload would report spurious removals next time.
	if !noSave && reloadErr == nil {
		snap := model.Snapshot{Domain: cfg.Domain, TS: now.Unix(), Items: items}
		if err := model.SaveSnapshot(path, snap); err != nil {
			logger.WithError(err).Warn("Snapshot not saved")
		}
	}
	return output.Fprint(cmd.OutOrStdout(), result)
}
