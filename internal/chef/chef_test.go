package chef

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aayushbajaj/jexi/pkg/complexity"
)

// fixedSource answers every draw with the same value reduced modulo n.
type fixedSource int

func (f fixedSource) IntN(n int) int {
	return int(f) % n
}

func TestNewRejectsUnusableLists(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNoIngredients)

	_, err = New([]string{"abc123", "x-1"})
	require.ErrorIs(t, err, ErrNoIngredients)
}

func TestNewClassifiesIngredients(t *testing.T) {
	c, err := New([]string{"quantum", "7", "!", "forest", "42"})
	require.NoError(t, err)

	p := c.Pantry()
	assert.Equal(t, []string{"quantum", "forest"}, p.Words)
	assert.Equal(t, []string{"7", "42"}, p.Numbers)
	assert.Equal(t, []string{"!"}, p.Specials)
	assert.NotNil(t, c.Scorer())
}

func TestIsMemorable(t *testing.T) {
	tests := []struct {
		name  string
		combo []string
		want  bool
	}{
		{"two words", []string{"cat", "dog"}, false},
		{"alternating", []string{"cat", "7", "!"}, true},
		{"word number", []string{"cat", "42"}, true},
		{"two numbers", []string{"7", "42"}, false},
		{"two specials", []string{"!", "@"}, false},
		{"same kind apart", []string{"cat", "7", "dog"}, true},
		{"trailing repeat", []string{"!", "cat", "dog"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isMemorable(tt.combo))
		})
	}
}

func TestApplyFormat(t *testing.T) {
	combo := []string{"quantum", "7", "forest"}

	tests := []struct {
		format Format
		want   string
	}{
		{FormatTitle, "Quantum7Forest"},
		{FormatUpper, "QUANTUM7FOREST"},
		{FormatHyphen, "quantum-7-forest"},
		{FormatUnderscore, "quantum_7_forest"},
		{FormatPlain, "quantum7forest"},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, applyFormat(tt.format, combo))
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"hello world": "Hello World",
		"hELLO":       "Hello",
		"a1b2":        "A1B2",
		"!cat":        "!Cat",
		"":            "",
		"élan_vital":  "Élan_Vital",
	}
	for in, want := range tests {
		assert.Equal(t, want, titleCase(in), "titleCase(%q)", in)
	}
}

func TestApplySpice(t *testing.T) {
	c, err := New([]string{"quantum", "7", "!"}, WithSource(fixedSource(0)))
	require.NoError(t, err)

	assert.Equal(t, "forest7", c.applySpice(SpiceAppendNumber, "forest"))
	assert.Equal(t, "!forest", c.applySpice(SpicePrependSymbol, "forest"))
	assert.Equal(t, "for-est", c.applySpice(SpiceSplit, "forest"))
	assert.Equal(t, "forest", c.applySpice(SpiceNone, "forest"))
	assert.Equal(t, "é-ß", c.applySpice(SpiceSplit, "éß"), "split works on runes")
}

func TestApplySpiceWithoutNumbers(t *testing.T) {
	c, err := New([]string{"quantum", "!"}, WithSource(fixedSource(0)))
	require.NoError(t, err)

	assert.Equal(t, "forest", c.applySpice(SpiceAppendNumber, "forest"))
}

func TestRefillSkipsTinyPools(t *testing.T) {
	// One word appears twice in the pool; lengths run over [2, 2) so nothing is drawn.
	c, err := New([]string{"cat"})
	require.NoError(t, err)

	assert.Zero(t, c.refill())
	_, err = c.BakePassword()
	require.ErrorIs(t, err, ErrEmptyBuffer)
}

func TestRefillNeverMixesOnlyWords(t *testing.T) {
	c, err := New([]string{"cat", "dog"})
	require.NoError(t, err)

	_, err = c.BakePassword()
	require.ErrorIs(t, err, ErrEmptyBuffer)
}

func TestRefillProducesCombos(t *testing.T) {
	c, err := New([]string{"quantum", "7", "!", "forest", "42"})
	require.NoError(t, err)

	added := c.refill()
	assert.Positive(t, added)
	assert.Equal(t, added, c.Buffered())
	// Lengths 2 and 3 give at most 10 + 15 samples.
	assert.LessOrEqual(t, added, 25)
}

func TestBakePasswordIsFIFO(t *testing.T) {
	// 3 selects SpiceNone; "first" and "second" share no n-gram with the pantry.
	c, err := New([]string{"zebra", "7"}, WithSource(fixedSource(3)))
	require.NoError(t, err)
	c.brew = []string{"first", "second"}

	got, err := c.BakePassword()
	require.NoError(t, err)
	assert.Equal(t, "first", got)

	got, err = c.BakePassword()
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.Zero(t, c.Buffered())
}

func TestEnhanceRepairsWeakPattern(t *testing.T) {
	// 2 selects SpiceSplit with the "~" separator.
	c, err := New([]string{"zebra", "7"}, WithSource(fixedSource(2)))
	require.NoError(t, err)
	c.brew = []string{"abc"}

	got, err := c.BakePassword()
	require.NoError(t, err)
	assert.Equal(t, "a~bc", got)
	assert.False(t, c.Scorer().IsCommonPattern(got))
}

func TestEnhanceStopsAtRepairLimit(t *testing.T) {
	// 1 always prepends "@", which can never remove "abc".
	c, err := New([]string{"zebra", "7"}, WithSource(fixedSource(1)), WithRepairLimit(3))
	require.NoError(t, err)
	c.brew = []string{"abc"}

	got, err := c.BakePassword()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(got, "abc"))
	// Every extra "@" lowers diversity, so the first spiced form scores best.
	assert.Equal(t, "@abc", got)
}

func TestEnhanceUsesSuggestions(t *testing.T) {
	// Options are [quantu quantum quanta 7 ! 42]; 3 picks "7" and leaves it unspiced.
	c, err := New([]string{"quantum", "quanta", "7", "!", "42"}, WithSource(fixedSource(3)))
	require.NoError(t, err)
	c.brew = []string{"quantu"}

	got, err := c.BakePassword()
	require.NoError(t, err)
	assert.Equal(t, "7", got)
}

func TestEnhanceSkipsSuggestionsForShortLists(t *testing.T) {
	c, err := New([]string{"quantum", "quanta", "7"}, WithSource(fixedSource(3)))
	require.NoError(t, err)
	c.brew = []string{"quantu"}

	got, err := c.BakePassword()
	require.NoError(t, err)
	assert.Equal(t, "quantu", got)
}

func TestCustomScorer(t *testing.T) {
	c, err := New([]string{"zebra", "7"}, WithSource(fixedSource(2)), WithScorer(complexity.New("zz")))
	require.NoError(t, err)
	c.brew = []string{"abc"}

	got, err := c.BakePassword()
	require.NoError(t, err)
	assert.Equal(t, "a~bc", got, "split spice still runs, but abc is no longer weak")
}
