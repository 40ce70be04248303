// Package secrand provides uniform selection backed by crypto/rand.
package secrand

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// Source draws uniform integers in [0, n).
type Source interface {
	IntN(n int) int
}

type readerSource struct {
	r io.Reader
}

// New returns a Source reading from crypto/rand.
func New() Source {
	return readerSource{r: rand.Reader}
}

// FromReader returns a Source that reads its entropy from r.
func FromReader(r io.Reader) Source {
	return readerSource{r: r}
}

// IntN panics if n <= 0 or the entropy reader fails, matching crypto/rand.Read
// which treats a broken system source as unrecoverable.
func (s readerSource) IntN(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("secrand: invalid argument to IntN: %d", n))
	}
	v, err := rand.Int(s.r, big.NewInt(int64(n)))
	if err != nil {
		panic(fmt.Sprintf("secrand: read entropy: %v", err))
	}
	return int(v.Int64())
}

// Choice returns a uniformly chosen element of items.
func Choice[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmpty
	}
	return items[src.IntN(len(items))], nil
}

// Sample returns k elements of items chosen without replacement, in selection order.
func Sample[T any](src Source, items []T, k int) ([]T, error) {
	if k < 0 || k > len(items) {
		return nil, fmt.Errorf("%w: sample of %d from %d", ErrSampleTooLarge, k, len(items))
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(idx)-i)
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = items[idx[i]]
	}
	return out, nil
}
