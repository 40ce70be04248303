// Package ingredients sorts word-list entries into the categories the mixer draws from.
package ingredients

import "unicode"

// Kind is the category of a single ingredient.
type Kind int

const (
	KindNone Kind = iota
	KindWord
	KindNumber
	KindSpecial
)

func (k Kind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindNumber:
		return "num"
	case KindSpecial:
		return "spec"
	default:
		return "none"
	}
}

// Pantry holds the classified ingredients of one word list.
type Pantry struct {
	Words    []string
	Numbers  []string
	Specials []string
}

// Len returns the number of classified ingredients.
func (p Pantry) Len() int {
	return len(p.Words) + len(p.Numbers) + len(p.Specials)
}

// Empty reports whether every category is empty.
func (p Pantry) Empty() bool {
	return p.Len() == 0
}

// Classify partitions items into words, numbers and specials.
// Mixed tokens such as "abc123" or "ab-c" belong to no category and are dropped.
func Classify(items []string) Pantry {
	var p Pantry
	for _, item := range items {
		switch {
		case IsWord(item):
			p.Words = append(p.Words, item)
		case IsNumber(item):
			p.Numbers = append(p.Numbers, item)
		case IsSpecial(item):
			p.Specials = append(p.Specials, item)
		}
	}
	return p
}

// IsWord reports whether s is non-empty and made only of letters.
func IsWord(s string) bool {
	return all(s, unicode.IsLetter)
}

// IsNumber reports whether s is non-empty and made only of decimal digits.
func IsNumber(s string) bool {
	return all(s, unicode.IsDigit)
}

// IsSpecial reports whether s is non-empty and has no letter or number in it.
func IsSpecial(s string) bool {
	return all(s, func(r rune) bool { return !isAlnum(r) })
}

// KindOf re-types a single pooled element. Unlike Classify it never returns
// KindNone for a non-empty string: anything that is not all digits and not
// purely alphanumeric counts as special, the rest is a word.
func KindOf(item string) Kind {
	if item == "" {
		return KindNone
	}
	if IsNumber(item) {
		return KindNumber
	}
	if !all(item, isAlnum) {
		return KindSpecial
	}
	return KindWord
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r)
}

func all(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}
