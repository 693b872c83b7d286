//go:build darwin

package darwin

import (
	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/platform"
)

func init() {
	platform.NewProviderFunc = func(opts platform.ProviderOptions) (*platform.Provider, error) {
		processes := NewProcesses(ExecRunner)
		poller := platform.NewProcessPoller(processes, opts.PollInterval, logging.NewLogger("poller"))
		return &platform.Provider{
			Processes:   processes,
			Events:      poller,
			Preferences: NewPreferences(ExecRunner),
			Icons:       NewIcons(ExecRunner),
			Badges:      NewBadges(ExecRunner, DefaultBadgeTTL, logging.NewLogger("badges")),
			Workspace:   NewWorkspace(ExecRunner, logging.NewLogger("workspace")),
		}, nil
	}
}
