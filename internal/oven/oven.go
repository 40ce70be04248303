// Package oven runs the bake-score-accept loop until enough strong passwords exist.
package oven

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aayushbajaj/jexi/internal/chef"
)

const (
	// DefaultThreshold is the score a password must exceed to be accepted.
	DefaultThreshold = 0.6

	MinCount = 1
	MaxCount = 1000

	// MaxStarvedRefills is how many consecutive empty refills end a session.
	MaxStarvedRefills = 64

	// MaxAttemptsPerPassword bounds rejected bakes per requested password.
	MaxAttemptsPerPassword = 1000
)

var (
	// ErrStarved means the mixer kept producing no candidates at all.
	ErrStarved = errors.New("ingredients cannot form memorable combos")

	// ErrExhausted means too many candidates were rejected by the threshold.
	ErrExhausted = errors.New("too many candidates below the strength threshold")
)

// Baker produces one candidate per call.
type Baker interface {
	BakePassword() (string, error)
}

// Scorer rates a candidate.
type Scorer interface {
	Score(candidate string) float64
}

// Progress describes one accepted password.
type Progress struct {
	Password string
	Score    float64
	Accepted int
	Total    int
	Elapsed  time.Duration

	// Checkpoint is set on every tenth of the requested total.
	Checkpoint bool
}

// Result holds the accepted passwords in acceptance order.
type Result struct {
	Passwords []string
	Scores    []float64
	Requested int
	Attempts  int
	Cancelled bool
	Duration  time.Duration
}

type options struct {
	threshold float64
	onAccept  func(Progress)
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*options)

func WithThreshold(t float64) Option {
	return func(o *options) {
		if t > 0 {
			o.threshold = t
		}
	}
}

// WithProgress registers a callback run after every accepted password.
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.onAccept = fn
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// ClampCount limits a requested count to [MinCount, MaxCount].
func ClampCount(n int) int {
	return max(MinCount, min(MaxCount, n))
}

// Generate bakes until count passwords score above the threshold. ctx is
// checked before every bake; on cancellation the passwords gathered so far
// are returned with Cancelled set and a nil error. ErrStarved and
// ErrExhausted are returned together with the partial result.
func Generate(ctx context.Context, b Baker, s Scorer, count int, opts ...Option) (*Result, error) {
	o := options{
		threshold: DefaultThreshold,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	count = ClampCount(count)
	start := o.now()
	res := &Result{Requested: count}
	checkpoint := max(1, count/10)
	maxAttempts := count * MaxAttemptsPerPassword

	finish := func() *Result {
		res.Duration = o.now().Sub(start)
		return res
	}

	starved := 0
	for len(res.Passwords) < count {
		if ctx.Err() != nil {
			res.Cancelled = true
			o.logger.Info("generation cancelled", "accepted", len(res.Passwords), "requested", count)
			return finish(), nil
		}

		pw, err := b.BakePassword()
		if err != nil {
			if !errors.Is(err, chef.ErrEmptyBuffer) {
				return finish(), fmt.Errorf("bake password: %w", err)
			}
			starved++
			if starved >= MaxStarvedRefills {
				return finish(), fmt.Errorf("%w: %d empty refills in a row", ErrStarved, starved)
			}
			continue
		}
		starved = 0

		res.Attempts++
		score := s.Score(pw)
		if score > o.threshold {
			res.Passwords = append(res.Passwords, pw)
			res.Scores = append(res.Scores, score)
			if o.onAccept != nil {
				accepted := len(res.Passwords)
				o.onAccept(Progress{
					Password:   pw,
					Score:      score,
					Accepted:   accepted,
					Total:      count,
					Elapsed:    o.now().Sub(start),
					Checkpoint: accepted%checkpoint == 0,
				})
			}
			continue
		}

		if res.Attempts >= maxAttempts {
			return finish(), fmt.Errorf("%w: %d attempts for %d passwords", ErrExhausted, res.Attempts, count)
		}
	}

	o.logger.Info("generation finished", "accepted", len(res.Passwords), "attempts", res.Attempts)
	return finish(), nil
}
