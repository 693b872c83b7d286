package darwin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBadgeTTL is how long one read of the Dock's badge labels is reused.
const DefaultBadgeTTL = time.Second

// dockBadgesScript reads the AXStatusLabel of every tile in the Dock. It
// needs the Accessibility permission.
const dockBadgesScript = `var se = Application('System Events');
var out = {};
var items = se.processes.byName('Dock').lists[0].uiElements();
for (var i = 0; i < items.length; i++) {
  try {
    var label = items[i].attributes.byName('AXStatusLabel').value();
    if (label !== null && label !== undefined && label !== '') {
      out[items[i].name()] = String(label);
    }
  } catch (e) {}
}
JSON.stringify(out);`

// Badges reads badge labels from the Dock process. Labels are fetched for
// all tiles at once and reused for ttl, so a refresh pass costs one query.
type Badges struct {
	run    Runner
	ttl    time.Duration
	logger *logrus.Entry

	mu      sync.Mutex
	labels  map[string]int
	fetched time.Time
}

// NewBadges returns a badge source. A nil runner selects ExecRunner; a
// zero ttl reads on every lookup.
func NewBadges(run Runner, ttl time.Duration, logger *logrus.Entry) *Badges {
	if run == nil {
		run = ExecRunner
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Badges{run: run, ttl: ttl, logger: logger}
}

// BadgeCount reports the badge shown on the tile named name.
func (b *Badges) BadgeCount(name string) (int, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.labels == nil || b.ttl == 0 || time.Since(b.fetched) >= b.ttl {
		labels, err := b.fetch()
		if err != nil {
			b.logger.WithError(err).Debug("Can't read dock badges")
			labels = map[string]int{}
		}
		b.labels = labels
		b.fetched = time.Now()
	}
	n, ok := b.labels[name]
	return n, ok
}

// Invalidate drops the cached labels.
func (b *Badges) Invalidate() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.labels = nil
}

func (b *Badges) fetch() (map[string]int, error) {
	ctx, cancel := withTimeout()
	defer cancel()
	out, err := runJXA(ctx, b.run, dockBadgesScript)
	if err != nil {
		return nil, err
	}
	return parseBadgeLabels(out)
}

func parseBadgeLabels(data []byte) (map[string]int, error) {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode badge labels: %w", err)
	}
	labels := make(map[string]int, len(raw))
	for name, label := range raw {
		labels[name] = parseBadgeLabel(label)
	}
	return labels, nil
}

// parseBadgeLabel converts a status label to a count. Labels without a
// number, such as "•" or "!", count as one.
func parseBadgeLabel(label string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, label)
	if digits == "" {
		if strings.TrimSpace(label) == "" {
			return 0
		}
		return 1
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 1
	}
	return n
}
