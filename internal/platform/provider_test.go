package platform

import (
	"runtime"
	"testing"
)

func TestNewProvider_ReturnsProvider(t *testing.T) {
	if runtime.GOOS != "darwin" {
		t.Skip("skipping on non-darwin")
	}
	// The darwin package registers itself only when imported; this just
	// checks that the call does not panic.
	_, _ = NewProvider(ProviderOptions{})
}

func TestNewProvider_UnsupportedPlatform(t *testing.T) {
	orig := NewProviderFunc
	NewProviderFunc = nil
	defer func() { NewProviderFunc = orig }()

	_, err := NewProvider(ProviderOptions{})
	if err == nil {
		t.Fatal("expected error on unsupported platform")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestNewProvider_PassesOptions(t *testing.T) {
	orig := NewProviderFunc
	defer func() { NewProviderFunc = orig }()

	var got ProviderOptions
	NewProviderFunc = func(opts ProviderOptions) (*Provider, error) {
		got = opts
		return &Provider{}, nil
	}
	if _, err := NewProvider(ProviderOptions{PollInterval: 5}); err != nil {
		t.Fatal(err)
	}
	if got.PollInterval != 5 {
		t.Errorf("poll interval not forwarded: %v", got.PollInterval)
	}
}
