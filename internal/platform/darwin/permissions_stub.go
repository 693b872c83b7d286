//go:build !darwin || !cgo

package darwin

// IsAccessibilityTrusted cannot be determined without cgo; osascript
// reports the failure itself.
func IsAccessibilityTrusted() bool {
	return true
}
