// Package gate holds the auto-apply decision for naming suggestions.
package gate

import "namefix/internal/suggest"

const (
	// AutoApplyThreshold is the minimum confidence for unattended renames.
	AutoApplyThreshold = 0.85
	// CollectThreshold is the floor below which suggestions are not even
	// reported. The pipeline driver applies it; the gate never sees those.
	CollectThreshold = 0.3
)

// AutoApply reports whether a suggestion may be applied without review.
// A rename touching a public surface is never auto-applied, regardless of
// confidence.
func AutoApply(s *suggest.NamingSuggestion) bool {
	if s == nil {
		return false
	}
	return s.Confidence >= AutoApplyThreshold &&
		s.Safety.AutofixEligible &&
		!s.Safety.IsPublicSurface
}
