// Package suggest turns a SymbolContext into a validated NamingSuggestion via
// an external model, with a fingerprint cache, retry with backoff, and cost
// accounting in front of it.
package suggest

import (
	"fmt"
	"regexp"

	"namefix/internal/errors"
)

const (
	// MinRationaleLength is the shortest rationale a suggestion may carry.
	MinRationaleLength = 10
	// MaxAlternatives caps the alternative name list; longer lists are
	// truncated before validation.
	MaxAlternatives = 5
)

// identifierPattern is the syntax every proposed name must satisfy.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Safety carries the model's own risk assessment of a rename.
type Safety struct {
	IsPublicSurface bool   `json:"isPublicSurface"`
	AutofixEligible bool   `json:"autofixEligible"`
	ReasonText      string `json:"reasonText"`
}

// NamingSuggestion is a validated rename proposal. Instances that fail
// Validate are discarded, never repaired.
type NamingSuggestion struct {
	OldName      string   `json:"oldName"`
	NewName      string   `json:"newName"`
	Confidence   float64  `json:"confidence"`
	Rationale    string   `json:"rationale"`
	Safety       Safety   `json:"safety"`
	Alternatives []string `json:"alternatives"`
}

// Validate checks the suggestion invariants. The returned error carries the
// SuggestionInvalid code so callers can tell rejection from request failure.
func (s *NamingSuggestion) Validate() error {
	if s.OldName == "" {
		return invalid("oldName is empty")
	}
	if !identifierPattern.MatchString(s.NewName) {
		return invalid(fmt.Sprintf("newName %q is not a valid identifier", s.NewName))
	}
	if s.NewName == s.OldName {
		return invalid("newName equals oldName")
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return invalid(fmt.Sprintf("confidence %.2f outside [0,1]", s.Confidence))
	}
	if len(s.Rationale) < MinRationaleLength {
		return invalid("rationale too short")
	}
	if len(s.Alternatives) == 0 || len(s.Alternatives) > MaxAlternatives {
		return invalid(fmt.Sprintf("alternatives count %d outside 1-%d", len(s.Alternatives), MaxAlternatives))
	}
	return nil
}

func invalid(message string) error {
	return errors.New(errors.SuggestionInvalid, message, nil)
}
