package darwin

import (
	"context"
	"fmt"
	"strings"

	"howett.net/plist"

	"github.com/mj1618/dock-cli/internal/platform"
)

// Preferences reads preference domains with `defaults export`.
type Preferences struct {
	run Runner
}

// NewPreferences returns a preferences store. A nil runner selects ExecRunner.
func NewPreferences(run Runner) *Preferences {
	if run == nil {
		run = ExecRunner
	}
	return &Preferences{run: run}
}

func (p *Preferences) PersistentDomain(name string) (map[string]any, error) {
	ctx, cancel := withTimeout()
	defer cancel()
	out, err := p.run(ctx, "defaults", "export", name, "-")
	if err != nil {
		if strings.Contains(err.Error(), "does not exist") {
			return nil, fmt.Errorf("%s: %w", name, platform.ErrDomainNotFound)
		}
		return nil, fmt.Errorf("export domain %s: %w", name, err)
	}
	domain, err := decodeDomain(out)
	if err != nil {
		return nil, fmt.Errorf("export domain %s: %w", name, err)
	}
	if len(domain) == 0 {
		return nil, fmt.Errorf("%s: %w", name, platform.ErrDomainNotFound)
	}
	return domain, nil
}

// decodeDomain parses an exported property list (XML or binary).
func decodeDomain(data []byte) (map[string]any, error) {
	var domain map[string]any
	if _, err := plist.Unmarshal(data, &domain); err != nil {
		return nil, fmt.Errorf("decode property list: %w", err)
	}
	return domain, nil
}
