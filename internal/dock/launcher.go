package dock

import (
	"github.com/sirupsen/logrus"

	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/monitoring"
	"github.com/mj1618/dock-cli/internal/platform"
)

// Launcher dispatches an identity to the workspace: file identities are
// opened, anything else is launched as a bundle identifier.
type Launcher struct {
	workspace platform.Workspace
	logger    *logrus.Entry
	metrics   *monitoring.Metrics
}

// NewLauncher returns a Launcher. logger and metrics may be nil.
func NewLauncher(ws platform.Workspace, logger *logrus.Entry, metrics *monitoring.Metrics) *Launcher {
	if logger == nil {
		logger = logging.NewLogger("launcher")
	}
	return &Launcher{workspace: ws, logger: logger, metrics: metrics}
}

// Launch reports whether the OS accepted the request. The resulting state
// change is observed later through lifecycle notifications.
func (l *Launcher) Launch(id model.Identity) bool {
	if id == "" || l.workspace == nil {
		l.metrics.Launch(false)
		return false
	}
	var ok bool
	if id.IsFile() {
		ok = l.workspace.OpenFile(id.Path())
	} else {
		ok = l.workspace.LaunchApplication(string(id))
	}
	l.logger.WithFields(logrus.Fields{
		"identity": id,
		"accepted": ok,
	}).Info("Launch requested")
	l.metrics.Launch(ok)
	return ok
}
