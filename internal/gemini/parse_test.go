// internal/gemini/parse_test.go
package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutribot/internal/models"
)

func TestParseClassificationValid(t *testing.T) {
	raw := `{"fruits": 0.1, "vegetables": 0.3, "grains": 0.0, "protein": 0.05, "dairy": 0.2, "oils": 0.02}`

	cls, err := parseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, 0.1, cls.Fruits)
	assert.Equal(t, 0.3, cls.Vegetables)
	assert.Equal(t, 0.05, cls.Protein)
}

func TestParseClassificationFencedReply(t *testing.T) {
	raw := "Here is the classification:\n```json\n" +
		`{"fruits": 0.5, "vegetables": 0, "grains": 0, "protein": 0, "dairy": 0, "oils": 0}` +
		"\n```\nLet me know if you need anything else."

	cls, err := parseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, 0.5, cls.Fruits)
}

func TestParseClassificationClampsValues(t *testing.T) {
	raw := `{"fruits": 1.8, "vegetables": -0.2, "grains": 0.3, "protein": 0, "dairy": 0, "oils": 0}`

	cls, err := parseClassification(raw)
	require.NoError(t, err)
	assert.Equal(t, 1.0, cls.Fruits)
	assert.Equal(t, 0.0, cls.Vegetables)
	assert.Equal(t, 0.3, cls.Grains)

	for _, g := range models.Groups() {
		v := cls.Get(g)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
}

func TestParseClassificationMissingKey(t *testing.T) {
	// No "oils" key.
	raw := `{"fruits": 0.1, "vegetables": 0.3, "grains": 0, "protein": 0.1, "dairy": 0}`

	_, err := parseClassification(raw)
	require.ErrorIs(t, err, ErrInvalidClassification)
}

func TestParseClassificationExtraKey(t *testing.T) {
	raw := `{"fruits": 0.1, "vegetables": 0.3, "grains": 0, "protein": 0.1, "dairy": 0, "oils": 0, "sugar": 0.9}`

	_, err := parseClassification(raw)
	require.ErrorIs(t, err, ErrInvalidClassification)
}

func TestParseClassificationRenamedKey(t *testing.T) {
	raw := `{"fruits": 0.1, "vegetables": 0.3, "grains": 0, "protein": 0.1, "dairy": 0, "fats": 0.1}`

	_, err := parseClassification(raw)
	require.ErrorIs(t, err, ErrInvalidClassification)
}

func TestParseClassificationNonNumericValue(t *testing.T) {
	raw := `{"fruits": "plenty", "vegetables": 0.3, "grains": 0, "protein": 0.1, "dairy": 0, "oils": 0}`

	_, err := parseClassification(raw)
	require.ErrorIs(t, err, ErrInvalidClassification)
}

func TestParseClassificationNoJSON(t *testing.T) {
	_, err := parseClassification("I could not identify any food in this message.")
	require.ErrorIs(t, err, ErrInvalidClassification)
}

func TestParseSuggestions(t *testing.T) {
	raw := `{"recommendations": ["Add a cup of berries to breakfast", "Snack on a handful of almonds"]}`

	got, err := parseSuggestions(raw)
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, "Add a cup of berries to breakfast", got[0])
}

func TestParseSuggestionsDropsBlanks(t *testing.T) {
	raw := `{"recommendations": ["", "Drink a glass of milk with dinner"]}`

	got, err := parseSuggestions(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Drink a glass of milk with dinner"}, got)
}

func TestParseSuggestionsMalformed(t *testing.T) {
	_, err := parseSuggestions("Sure! Try eating more vegetables.")
	require.Error(t, err)

	_, err = parseSuggestions(`{"recommendations": []}`)
	require.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	got, err := extractJSON(`prefix {"a": {"b": 1}} suffix`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, got)

	_, err = extractJSON("} backwards {")
	require.Error(t, err)
}
