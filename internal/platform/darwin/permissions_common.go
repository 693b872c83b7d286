package darwin

import "errors"

// ErrAccessibility explains how to grant the permission badge reads need.
var ErrAccessibility = errors.New("accessibility permission required to read dock badges\n\n" +
	"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
	"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
	"Then restart the terminal and try again.")

// CheckAccessibilityPermission returns ErrAccessibility when the process is
// not trusted.
func CheckAccessibilityPermission() error {
	if !IsAccessibilityTrusted() {
		return ErrAccessibility
	}
	return nil
}
