// Package similarity suggests lexically close dictionary terms for a candidate.
//
// Every ingredient is turned into a TF-IDF vector over its lowercase
// character n-grams (n = 2..4, smoothed idf, l2-normalised). Queries are
// vectorised against the same vocabulary and ranked by cosine similarity
// through an inverted index, so a lookup only touches ingredients sharing
// at least one n-gram with the candidate.
package similarity

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

const (
	MinGram        = 2
	MaxGram        = 4
	MaxSuggestions = 5
)

type posting struct {
	doc    int
	weight float64
}

// Advisor is read-only after New and safe for concurrent use.
type Advisor struct {
	words    []string
	vocab    map[string]int
	idf      []float64
	postings [][]posting
}

// New builds the index over words. With fewer than two words the advisor is
// inert and Suggest always returns nothing.
func New(words []string) *Advisor {
	a := &Advisor{words: append([]string(nil), words...)}
	if len(words) < 2 {
		return a
	}

	counts := make([]map[string]int, len(words))
	df := make(map[string]int)
	for i, w := range words {
		counts[i] = ngrams(w)
		for g := range counts[i] {
			df[g]++
		}
	}

	terms := make([]string, 0, len(df))
	for g := range df {
		terms = append(terms, g)
	}
	sort.Strings(terms)

	n := float64(len(words))
	a.vocab = make(map[string]int, len(terms))
	a.idf = make([]float64, len(terms))
	for i, g := range terms {
		a.vocab[g] = i
		a.idf[i] = math.Log((1+n)/(1+float64(df[g]))) + 1
	}

	a.postings = make([][]posting, len(terms))
	for doc, c := range counts {
		for term, w := range a.weigh(c) {
			a.postings[term] = append(a.postings[term], posting{doc: doc, weight: w})
		}
	}
	return a
}

// Ready reports whether the advisor has a trained index.
func (a *Advisor) Ready() bool {
	return a.vocab != nil
}

// Size returns the number of indexed ingredients.
func (a *Advisor) Size() int {
	return len(a.words)
}

// Suggest returns the MaxSuggestions ingredients closest to candidate, most
// similar first. Once at least one ingredient shares an n-gram with the
// candidate, the list is topped up with the unrelated ingredients in index
// order. It returns nil when the advisor is inert, when fewer than
// MaxSuggestions ingredients are indexed, or when the candidate shares no
// n-gram with the vocabulary.
func (a *Advisor) Suggest(candidate string) []string {
	if !a.Ready() || len(a.words) < MaxSuggestions {
		return nil
	}

	query := a.weigh(ngrams(candidate))
	if len(query) == 0 {
		return nil
	}

	terms := make([]int, 0, len(query))
	for term := range query {
		terms = append(terms, term)
	}
	sort.Ints(terms)

	scores := make(map[int]float64)
	for _, term := range terms {
		qw := query[term]
		for _, p := range a.postings[term] {
			scores[p.doc] += qw * p.weight
		}
	}

	type hit struct {
		doc int
		sim float64
	}
	hits := make([]hit, 0, len(scores))
	for doc, sim := range scores {
		if sim > 0 {
			hits = append(hits, hit{doc: doc, sim: sim})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].sim != hits[j].sim {
			return hits[i].sim > hits[j].sim
		}
		return hits[i].doc < hits[j].doc
	})

	if len(hits) == 0 {
		return nil
	}
	if len(hits) > MaxSuggestions {
		hits = hits[:MaxSuggestions]
	}

	out := make([]string, 0, MaxSuggestions)
	ranked := make(map[int]bool, len(hits))
	for _, h := range hits {
		out = append(out, a.words[h.doc])
		ranked[h.doc] = true
	}
	for doc := 0; len(out) < MaxSuggestions && doc < len(a.words); doc++ {
		if !ranked[doc] {
			out = append(out, a.words[doc])
		}
	}
	return out
}

// weigh maps n-gram counts to l2-normalised tf-idf weights keyed by term id.
// N-grams outside the vocabulary are ignored.
func (a *Advisor) weigh(counts map[string]int) map[int]float64 {
	vec := make(map[int]float64, len(counts))
	var norm float64
	for g, c := range counts {
		term, ok := a.vocab[g]
		if !ok {
			continue
		}
		w := float64(c) * a.idf[term]
		vec[term] = w
		norm += w * w
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for term := range vec {
		vec[term] /= norm
	}
	return vec
}

// ngrams counts the character n-grams of the lowercased text after runs of
// two or more whitespace characters are collapsed to one space.
func ngrams(text string) map[string]int {
	runes := collapseSpace([]rune(strings.ToLower(text)))
	counts := make(map[string]int)
	for n := MinGram; n <= MaxGram; n++ {
		for i := 0; i+n <= len(runes); i++ {
			counts[string(runes[i:i+n])]++
		}
	}
	return counts
}

func collapseSpace(runes []rune) []rune {
	out := make([]rune, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		if !unicode.IsSpace(runes[i]) {
			out = append(out, runes[i])
			continue
		}
		j := i
		for j+1 < len(runes) && unicode.IsSpace(runes[j+1]) {
			j++
		}
		if j > i {
			out = append(out, ' ')
		} else {
			out = append(out, runes[i])
		}
		i = j
	}
	return out
}
