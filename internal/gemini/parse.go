// internal/gemini/parse.go
package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"nutribot/internal/models"
)

// ErrInvalidClassification reports a model reply that could not be parsed
// into the six food-group fractions. Callers treat it as non-fatal: the
// meal is not logged and the user gets a failure notice.
var ErrInvalidClassification = errors.New("reply is not a valid meal classification")

// extractJSON returns the substring between the first '{' and the last '}'.
// Models frequently wrap JSON in prose or markdown fences despite the
// prompt's instruction.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in reply")
	}
	return s[start : end+1], nil
}

// parseClassification decodes a raw model reply into a Classification.
// The reply must contain exactly the six known group keys with numeric
// values; anything else fails with ErrInvalidClassification. Values are
// clamped to [0, 1] afterwards.
func parseClassification(raw string) (models.Classification, error) {
	var zero models.Classification

	jsonStr, err := extractJSON(raw)
	if err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidClassification, err)
	}

	var fields map[string]float64
	if err := json.Unmarshal([]byte(jsonStr), &fields); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidClassification, err)
	}

	groups := models.Groups()
	if len(fields) != len(groups) {
		return zero, fmt.Errorf("%w: expected %d keys, got %d", ErrInvalidClassification, len(groups), len(fields))
	}

	var c models.Classification
	for _, g := range groups {
		v, ok := fields[string(g)]
		if !ok {
			return zero, fmt.Errorf("%w: missing key %q", ErrInvalidClassification, g)
		}
		c.Set(g, v)
	}

	return c.Clamped(), nil
}

// parseSuggestions decodes a {"recommendations": [...]} reply into the list
// of suggestion strings. Empty or blank entries are dropped.
func parseSuggestions(raw string) ([]string, error) {
	jsonStr, err := extractJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to extract suggestions: %w", err)
	}

	var payload struct {
		Recommendations []string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse suggestions: %w", err)
	}

	var out []string
	for _, s := range payload.Recommendations {
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("reply contained no suggestions")
	}
	return out, nil
}
