// Package chef mixes classified ingredients into memorable password candidates.
package chef

import (
	"io"
	"log/slog"

	"github.com/aayushbajaj/jexi/pkg/complexity"
	"github.com/aayushbajaj/jexi/pkg/ingredients"
	"github.com/aayushbajaj/jexi/pkg/secrand"
	"github.com/aayushbajaj/jexi/pkg/similarity"
)

const (
	// MaxComponents bounds the number of ingredients per combo.
	MaxComponents = 4

	// DefaultRepairLimit caps the weak-pattern repair loop.
	DefaultRepairLimit = 32
)

// Chef owns one generation session. The combo buffer is not synchronised:
// a Chef must only be used by one goroutine at a time.
type Chef struct {
	pantry      ingredients.Pantry
	scorer      *complexity.Scorer
	advisor     *similarity.Advisor
	rng         secrand.Source
	logger      *slog.Logger
	repairLimit int

	brew []string
}

type Option func(*Chef)

// WithSource replaces the crypto/rand backed source.
func WithSource(src secrand.Source) Option {
	return func(c *Chef) {
		if src != nil {
			c.rng = src
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Chef) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithScorer(s *complexity.Scorer) Option {
	return func(c *Chef) {
		if s != nil {
			c.scorer = s
		}
	}
}

// WithRepairLimit sets how many spice rounds may be spent removing a weak pattern.
func WithRepairLimit(n int) Option {
	return func(c *Chef) {
		if n > 0 {
			c.repairLimit = n
		}
	}
}

// New classifies items and trains the similarity advisor over the full list.
// It fails with ErrNoIngredients when no item falls into any category.
func New(items []string, opts ...Option) (*Chef, error) {
	if len(items) == 0 {
		return nil, ErrNoIngredients
	}
	pantry := ingredients.Classify(items)
	if pantry.Empty() {
		return nil, ErrNoIngredients
	}

	c := &Chef{
		pantry:      pantry,
		scorer:      complexity.New(),
		rng:         secrand.New(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		repairLimit: DefaultRepairLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.advisor = similarity.New(items)

	c.logger.Debug("chef ready",
		"words", len(pantry.Words),
		"numbers", len(pantry.Numbers),
		"specials", len(pantry.Specials),
		"advisor", c.advisor.Ready(),
	)
	return c, nil
}

// Pantry returns the classified ingredients.
func (c *Chef) Pantry() ingredients.Pantry {
	return c.pantry
}

// Scorer returns the scorer used for weak-pattern repair.
func (c *Chef) Scorer() *complexity.Scorer {
	return c.scorer
}

// Buffered returns the number of candidates waiting in the combo buffer.
func (c *Chef) Buffered() int {
	return len(c.brew)
}
