package backends

import (
	"namefix/internal/lang"
	"namefix/internal/logging"
	"namefix/internal/tier"
)

// Registry resolves a language to the backend that will rename it. The
// ladder runs tier-first: the detector names the effective tier, the
// registry maps tier to backend, and an unavailable backend degrades to
// fallback silently.
type Registry struct {
	detector *tier.Detector
	backends map[BackendID]Backend
	logger   *logging.Logger
}

// NewRegistry creates an empty registry bound to a detector.
func NewRegistry(detector *tier.Detector, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Registry{
		detector: detector,
		backends: make(map[BackendID]Backend),
		logger:   logger,
	}
}

// DefaultRegistry wires the standard three backends.
func DefaultRegistry(detector *tier.Detector, runner tier.ExecRunner, verifier *Verifier, logger *logging.Logger) *Registry {
	r := NewRegistry(detector, logger)
	fallback := NewFallbackBackend(verifier, logger)
	r.Register(fallback)
	r.Register(NewToolBackend(detector, runner, verifier, fallback, logger))
	r.Register(NewTreeBackend(logger))
	return r
}

// Register adds a backend, replacing any previous one with the same ID.
func (r *Registry) Register(b Backend) {
	r.backends[b.ID()] = b
}

// Backend returns a registered backend by ID.
func (r *Registry) Backend(id BackendID) (Backend, bool) {
	b, ok := r.backends[id]
	return b, ok
}

// Select returns the backend that will rename files of this language.
func (r *Registry) Select(language lang.Language) Backend {
	preferred := backendForTier(r.detector.EffectiveTier(language))
	if b, ok := r.backends[preferred]; ok && b.IsAvailable() {
		return b
	}
	if preferred != BackendFallback {
		r.logger.Debug("backend unavailable, degrading to fallback", map[string]interface{}{
			"language":  string(language),
			"preferred": string(preferred),
		})
	}
	return r.backends[BackendFallback]
}

func backendForTier(t tier.Tier) BackendID {
	switch t {
	case tier.TierTree:
		return BackendTree
	case tier.TierTool:
		return BackendTool
	default:
		return BackendFallback
	}
}
