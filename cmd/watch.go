package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/monitoring"
	"github.com/mj1618/dock-cli/internal/output"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream dock changes as JSONL",
	Long: `Follow application launches, terminations and badge changes, and emit dock
changes as JSONL to stdout.

The first line is a snapshot of the whole dock. Later lines carry only what
changed: items added, removed, or changed, and the badged item set when it
moves. Output is always JSONL regardless of the --format flag.

Edits to the config file's badge_refresh take effect without a restart.
Use Ctrl+C or --duration to stop watching.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Duration("duration", 0, "Stop after this long (0 = until Ctrl+C)")
	watchCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	watchCmd.Flags().Bool("no-badges", false, "Do not emit badge events")
}

// watchStream turns delegate callbacks into JSONL events.
type watchStream struct {
	mu       sync.Mutex
	enc      *json.Encoder
	noBadges bool
	started  bool
	prev     []model.ItemView
	badges   []output.BadgeEntry
	events   int
}

func newWatchStream(w io.Writer, noBadges bool) *watchStream {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &watchStream{enc: enc, noBadges: noBadges}
}

func (s *watchStream) emit(ev output.WatchEvent) {
	ev.TS = time.Now().Unix()
	_ = s.enc.Encode(ev)
	s.events++
}

func (s *watchStream) DidUpdate(items []model.ItemView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.started = true
		s.prev = items
		s.emit(output.WatchEvent{Type: output.WatchSnapshot, Items: items, Count: len(items)})
		return
	}
	changes := model.DiffItems(s.prev, items)
	s.prev = items
	if len(changes) == 0 {
		return
	}
	s.emit(output.WatchEvent{Type: output.WatchChanges, Changes: changes, Count: len(changes)})
}

func (s *watchStream) DidUpdateBadge(items []model.ItemView) {
	if s.noBadges {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := output.BadgeEntries(items)
	if s.started && reflect.DeepEqual(entries, s.badges) {
		return
	}
	s.badges = entries
	s.emit(output.WatchEvent{Type: output.WatchBadges, Badges: entries, Count: len(entries)})
}

func (s *watchStream) done(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.enc.Encode(map[string]interface{}{
		"type":    output.WatchDone,
		"ts":      time.Now().Unix(),
		"elapsed": fmt.Sprintf("%.1fs", elapsed.Seconds()),
		"events":  s.events,
	})
}

func runWatch(cmd *cobra.Command, args []string) error {
	duration, _ := cmd.Flags().GetDuration("duration")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
	noBadges, _ := cmd.Flags().GetBool("no-badges")

	var metrics *monitoring.Metrics
	if metricsAddr != "" {
		metrics = monitoring.NewMetrics()
	}

	stream := newWatchStream(cmd.OutOrStdout(), noBadges)
	engine, err := newEngine(stream, metrics)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context(), duration)
	defer cancel()

	start := time.Now()
	if err := engine.Start(ctx); err != nil {
		return err
	}
	serveMetrics(ctx, metrics, metricsAddr)
	go engine.WatchIntervals(ctx, watchConfig(ctx, configPath()))

	<-ctx.Done()
	engine.Stop()
	stream.done(time.Since(start))
	return nil
}
