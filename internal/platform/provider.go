package platform

import (
	"errors"
	"fmt"
	"runtime"
	"time"
)

// Provider bundles all platform backends for the current OS.
type Provider struct {
	Processes   ProcessDirectory
	Events      EventSource
	Preferences PreferencesStore
	Icons       IconResolver
	Badges      BadgeSource
	Workspace   Workspace
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("dock-cli is not supported on %s/%s; supported: darwin/amd64, darwin/arm64", runtime.GOOS, runtime.GOARCH)

// ErrDomainNotFound is returned by PreferencesStore when a domain does not exist.
var ErrDomainNotFound = errors.New("preferences domain not found")

// ProviderOptions tunes the backends built by NewProviderFunc.
type ProviderOptions struct {
	// PollInterval controls how often the process list is sampled to
	// synthesize lifecycle events. Zero selects the backend default.
	PollInterval time.Duration
}

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go for the macOS registration.
var NewProviderFunc func(opts ProviderOptions) (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider(opts ProviderOptions) (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc(opts)
}
