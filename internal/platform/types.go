package platform

import (
	"fmt"
	"strings"

	"github.com/mj1618/dock-cli/internal/model"
)

// ActivationPolicy mirrors how an application presents itself to the user.
type ActivationPolicy int

const (
	ActivationPolicyRegular ActivationPolicy = iota
	ActivationPolicyAccessory
	ActivationPolicyProhibited
)

// ParseActivationPolicy converts a backend string to an ActivationPolicy.
func ParseActivationPolicy(s string) (ActivationPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "regular", "0":
		return ActivationPolicyRegular, nil
	case "accessory", "1":
		return ActivationPolicyAccessory, nil
	case "prohibited", "2":
		return ActivationPolicyProhibited, nil
	default:
		return ActivationPolicyProhibited, fmt.Errorf("unknown activation policy: %q (expected regular, accessory, or prohibited)", s)
	}
}

func (p ActivationPolicy) String() string {
	switch p {
	case ActivationPolicyRegular:
		return "regular"
	case ActivationPolicyAccessory:
		return "accessory"
	default:
		return "prohibited"
	}
}

// RunningApp is one entry of the OS process directory.
type RunningApp struct {
	BundleID          string
	Name              string
	BundlePath        string
	Icon              model.Icon
	PID               int
	FinishedLaunching bool
	Active            bool
	Policy            ActivationPolicy
}

// EventKind identifies an application lifecycle notification.
type EventKind string

const (
	EventWillLaunch    EventKind = "will-launch"
	EventDidLaunch     EventKind = "did-launch"
	EventDidActivate   EventKind = "did-activate"
	EventDidDeactivate EventKind = "did-deactivate"
	EventDidTerminate  EventKind = "did-terminate"
)

// LifecycleEvents lists every application lifecycle event kind.
var LifecycleEvents = []EventKind{
	EventWillLaunch,
	EventDidLaunch,
	EventDidActivate,
	EventDidDeactivate,
	EventDidTerminate,
}

// ParseEventKind converts a string to an EventKind.
func ParseEventKind(s string) (EventKind, error) {
	k := EventKind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range LifecycleEvents {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown event kind: %q", s)
}

// Event is a lifecycle notification. Its payload is informational only;
// consumers re-read the process directory instead of trusting it.
type Event struct {
	Kind     EventKind
	BundleID string
	PID      int
}
