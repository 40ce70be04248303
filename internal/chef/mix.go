package chef

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/aayushbajaj/jexi/pkg/ingredients"
	"github.com/aayushbajaj/jexi/pkg/secrand"
)

// Format is the cosmetic transform applied to a freshly mixed combo.
type Format int

const (
	FormatTitle Format = iota
	FormatUpper
	FormatHyphen
	FormatUnderscore
	FormatPlain

	formatCount
)

func (f Format) String() string {
	switch f {
	case FormatTitle:
		return "title"
	case FormatUpper:
		return "upper"
	case FormatHyphen:
		return "hyphen"
	case FormatUnderscore:
		return "underscore"
	case FormatPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// pool lists words twice so natural words dominate the draw.
func (c *Chef) pool() []string {
	p := c.pantry
	elements := make([]string, 0, 2*len(p.Words)+len(p.Numbers)+len(p.Specials))
	elements = append(elements, p.Words...)
	elements = append(elements, p.Words...)
	elements = append(elements, p.Numbers...)
	elements = append(elements, p.Specials...)
	return elements
}

// refill appends a batch of formatted combos to the buffer. Combo lengths run
// from 2 up to, but excluding, min(MaxComponents, len(pool)).
func (c *Chef) refill() int {
	elements := c.pool()
	upper := min(MaxComponents, len(elements))

	added := 0
	for size := 2; size < upper; size++ {
		for i := 0; i < 5*size; i++ {
			combo, err := secrand.Sample(c.rng, elements, size)
			if err != nil {
				continue
			}
			if !isMemorable(combo) {
				continue
			}
			c.brew = append(c.brew, c.cookCombo(combo))
			added++
		}
	}

	c.logger.Debug("refilled combo buffer", "pool", len(elements), "added", added)
	return added
}

// isMemorable rejects combos where two neighbours share a category.
func isMemorable(combo []string) bool {
	for i := 1; i < len(combo); i++ {
		if ingredients.KindOf(combo[i-1]) == ingredients.KindOf(combo[i]) {
			return false
		}
	}
	return true
}

func (c *Chef) cookCombo(combo []string) string {
	return applyFormat(Format(c.rng.IntN(int(formatCount))), combo)
}

func applyFormat(f Format, combo []string) string {
	joined := strings.Join(combo, "")
	switch f {
	case FormatTitle:
		return titleCase(joined)
	case FormatUpper:
		return cases.Upper(language.Und).String(joined)
	case FormatHyphen:
		return strings.Join(combo, "-")
	case FormatUnderscore:
		return strings.Join(combo, "_")
	default:
		return joined
	}
}

// titleCase upper-cases every cased rune that follows an uncased one and
// lower-cases the rest, so "quantum7forest" becomes "Quantum7Forest".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if prevCased {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToTitle(r))
		}
		prevCased = unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
	}
	return b.String()
}
