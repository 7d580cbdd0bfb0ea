// Package reward draws a prize from a weighted table.
//
// A Table is an ordered list of entries whose weights are probabilities.
// Draw walks the running sum of weights and returns the first entry whose
// cumulative probability reaches the draw; if the weights sum to less than
// one, the remainder falls to the last entry.
package reward

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// sumTolerance absorbs rounding in weights written as decimals.
const sumTolerance = 1e-9

// Errors returned by NewTable.
var (
	ErrEmpty         = errors.New("reward: table is empty")
	ErrInvalidWeight = errors.New("reward: weight must be a finite probability")
	ErrWeightSum     = errors.New("reward: weights sum to more than 1")
)

// Source yields uniform values in [0, 1). *rand.Rand from math/rand and
// math/rand/v2 both satisfy it.
type Source interface {
	Float64() float64
}

// Entry is one row of a table.
type Entry[T any] struct {
	Weight float64
	Value  T
}

// Table is an immutable weighted table.
type Table[T any] struct {
	entries []Entry[T]
	cum     []float64
}

// NewTable validates entries and precomputes their cumulative weights.
func NewTable[T any](entries ...Entry[T]) (*Table[T], error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	weights := make([]float64, len(entries))
	for i, e := range entries {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 || e.Weight > 1 {
			return nil, fmt.Errorf("%w: entry %d has %v", ErrInvalidWeight, i, e.Weight)
		}
		weights[i] = e.Weight
	}
	if sum := floats.Sum(weights); sum > 1+sumTolerance {
		return nil, fmt.Errorf("%w: got %v", ErrWeightSum, sum)
	}

	t := &Table[T]{
		entries: append([]Entry[T](nil), entries...),
		cum:     floats.CumSum(make([]float64, len(weights)), weights),
	}
	return t, nil
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	return len(t.entries)
}

// Entry returns entry i.
func (t *Table[T]) Entry(i int) Entry[T] {
	return t.entries[i]
}

// Draw returns the first entry with positive weight whose cumulative
// probability is at least u. Values of u beyond the total fall to the last
// entry.
func (t *Table[T]) Draw(u float64) T {
	return t.entries[t.index(u)].Value
}

// Pick draws with a value from src.
func (t *Table[T]) Pick(src Source) T {
	return t.Draw(src.Float64())
}

func (t *Table[T]) index(u float64) int {
	for i, c := range t.cum {
		if t.entries[i].Weight > 0 && u <= c {
			return i
		}
	}
	return len(t.entries) - 1
}

// Probabilities returns the chance of each entry being drawn for u uniform
// in [0, 1), including the remainder that falls to the last entry.
func (t *Table[T]) Probabilities() []float64 {
	p := make([]float64, len(t.entries))
	for i, e := range t.entries {
		p[i] = e.Weight
	}
	last := len(p) - 1
	p[last] += math.Max(0, 1-t.cum[last])
	return p
}
