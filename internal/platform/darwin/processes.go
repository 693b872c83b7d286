package darwin

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mj1618/dock-cli/internal/model"
	"github.com/mj1618/dock-cli/internal/platform"
)

const runningAppsScript = `ObjC.import('AppKit');
var apps = $.NSWorkspace.sharedWorkspace.runningApplications;
var out = [];
for (var i = 0; i < apps.count; i++) {
  var a = apps.objectAtIndex(i);
  var url = a.bundleURL;
  out.push({
    bundle_id: ObjC.unwrap(a.bundleIdentifier) || "",
    name: ObjC.unwrap(a.localizedName) || "",
    bundle_path: url.isNil() ? "" : (ObjC.unwrap(url.path) || ""),
    pid: a.processIdentifier,
    finished_launching: !!a.finishedLaunching,
    active: !!a.active,
    policy: a.activationPolicy
  });
}
JSON.stringify(out);`

type jxaApp struct {
	BundleID          string `json:"bundle_id"`
	Name              string `json:"name"`
	BundlePath        string `json:"bundle_path"`
	PID               int    `json:"pid"`
	FinishedLaunching bool   `json:"finished_launching"`
	Active            bool   `json:"active"`
	Policy            int    `json:"policy"`
}

// Processes lists running applications through NSWorkspace.
type Processes struct {
	run Runner
}

// NewProcesses returns a process directory. A nil runner selects ExecRunner.
func NewProcesses(run Runner) *Processes {
	if run == nil {
		run = ExecRunner
	}
	return &Processes{run: run}
}

func (p *Processes) RunningApplications(ctx context.Context) ([]platform.RunningApp, error) {
	out, err := runJXA(ctx, p.run, runningAppsScript)
	if err != nil {
		return nil, fmt.Errorf("list running applications: %w", err)
	}
	return parseRunningApps(out)
}

// parseRunningApps decodes the script output. The bundle path doubles as
// the icon handle; apps without a bundle get no icon.
func parseRunningApps(data []byte) ([]platform.RunningApp, error) {
	var raw []jxaApp
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode running applications: %w", err)
	}
	apps := make([]platform.RunningApp, 0, len(raw))
	for _, r := range raw {
		policy := platform.ActivationPolicyProhibited
		if r.Policy >= 0 && r.Policy <= int(platform.ActivationPolicyProhibited) {
			policy = platform.ActivationPolicy(r.Policy)
		}
		app := platform.RunningApp{
			BundleID:          r.BundleID,
			Name:              r.Name,
			BundlePath:        r.BundlePath,
			PID:               r.PID,
			FinishedLaunching: r.FinishedLaunching,
			Active:            r.Active,
			Policy:            policy,
		}
		if r.BundlePath != "" {
			app.Icon = model.Icon{Path: r.BundlePath}
		}
		apps = append(apps, app)
	}
	return apps, nil
}
