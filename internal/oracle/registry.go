// Package oracle recognizes principals operating as usage oracles.
package oracle

import (
	"github.com/aquametric/aquatrack/internal/config"
	"github.com/aquametric/aquatrack/internal/principal"
)

// Registry reports whether a principal is a recognized oracle. Recognition is
// advisory: the tracker designates a single oracle contract and treats that
// designation as authoritative.
type Registry interface {
	IsVerified(p principal.Principal) bool
}

type staticRegistry struct {
	verified map[principal.Principal]struct{}
}

// NewStaticRegistry builds a Registry over the configured principal list.
func NewStaticRegistry(cfg config.Config) Registry {
	verified := make(map[principal.Principal]struct{}, len(cfg.VerifiedOracles))
	for _, raw := range cfg.VerifiedOracles {
		p, err := principal.Parse(raw)
		if err != nil {
			continue
		}
		verified[p] = struct{}{}
	}
	return &staticRegistry{verified: verified}
}

func (r *staticRegistry) IsVerified(p principal.Principal) bool {
	_, ok := r.verified[p]
	return ok
}
