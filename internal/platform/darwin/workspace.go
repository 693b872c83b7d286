package darwin

import (
	"github.com/sirupsen/logrus"
)

// Workspace opens files and applications with open(1).
type Workspace struct {
	run    Runner
	logger *logrus.Entry
}

// NewWorkspace returns a workspace. A nil runner selects ExecRunner.
func NewWorkspace(run Runner, logger *logrus.Entry) *Workspace {
	if run == nil {
		run = ExecRunner
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Workspace{run: run, logger: logger}
}

func (w *Workspace) OpenFile(path string) bool {
	if path == "" {
		return false
	}
	return w.open(path)
}

func (w *Workspace) LaunchApplication(bundleID string) bool {
	if bundleID == "" {
		return false
	}
	return w.open("-b", bundleID)
}

func (w *Workspace) open(args ...string) bool {
	ctx, cancel := withTimeout()
	defer cancel()
	if _, err := w.run(ctx, "open", args...); err != nil {
		w.logger.WithError(err).WithField("args", args).Warn("open failed")
		return false
	}
	return true
}
