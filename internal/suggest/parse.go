package suggest

import (
	"encoding/json"
	"strings"

	"namefix/internal/errors"
)

// ParseSuggestion decodes a model payload into a validated suggestion.
// Undecodable JSON is a transient provider failure so the caller retries;
// a decoded suggestion that fails validation is rejected for good.
func ParseSuggestion(payload string) (*NamingSuggestion, error) {
	cleaned := stripFences(payload)

	var s NamingSuggestion
	if err := json.Unmarshal([]byte(cleaned), &s); err != nil {
		return nil, errors.New(errors.ProviderUnavailable, "model payload was not valid JSON", err)
	}
	if len(s.Alternatives) > MaxAlternatives {
		s.Alternatives = s.Alternatives[:MaxAlternatives]
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// stripFences removes a markdown code fence wrapper if present. Models
// sometimes wrap JSON output in ```json fences despite instructions.
func stripFences(payload string) string {
	trimmed := strings.TrimSpace(payload)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		// Drop the language tag on the opening fence line.
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, "json")
	}
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
