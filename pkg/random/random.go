// Package random implements the seeded pseudo-random engine behind avatar
// generation.
//
// A Randomizer turns a string seed plus a fixed numeric salt into a
// deterministic stream of integers, booleans, and weighted choices. The same
// (salt, seed) pair always yields the same draw sequence, which is what makes
// generated avatars reproducible byte-for-byte.
//
// # Determinism contract
//
// Every draw advances the internal hash, so the order of calls is part of the
// observable behavior: two call sites that swap their draw order produce
// entirely different downstream results. Consumers (the grid filler and the
// renderer) therefore perform their draws in a fixed, documented order.
//
// This is not a cryptographically secure source and must never be used as one.
package random

import (
	"sort"

	"github.com/boradatti/gummygrid/pkg/errors"
)

// Randomizer produces deterministic draws from a string seed and a fixed salt.
// It is not safe for concurrent use; each generator owns its own instance.
type Randomizer struct {
	seed string
	hash int32
	salt int32
}

// New creates a Randomizer with the given salt. The salt is folded into the
// hash on every SetSeed, so two Randomizers with different salts produce
// unrelated sequences for the same seed.
func New(salt int32) *Randomizer {
	return &Randomizer{salt: salt}
}

// SetSeed resets the internal hash and reseeds it from text. It folds in the
// ordinal value of every character in order, then the salt. Calling SetSeed
// with the same text always restores the identical starting state, regardless
// of any draws made before.
func (r *Randomizer) SetSeed(text string) {
	r.seed = text
	r.hash = 0
	for _, ch := range text {
		r.fold(int32(ch))
	}
	r.fold(r.salt)
}

// Seed returns the seed most recently passed to SetSeed.
func (r *Randomizer) Seed() string {
	return r.seed
}

// fold mixes n into the hash. Equivalent to h*31 + n in wrapping 32-bit
// arithmetic, matching the classic string-hash recurrence.
func (r *Randomizer) fold(n int32) {
	r.hash = r.hash<<5 - r.hash + n
}

// absHash returns |hash| widened to int64 so that MinInt32 does not overflow.
func (r *Randomizer) absHash() int64 {
	h := int64(r.hash)
	if h < 0 {
		h = -h
	}
	return h
}

// Number returns a deterministic integer in the inclusive range [min, max].
// After reading the current hash it folds in a dependent draw in [1, 999],
// chaining successive calls together.
func (r *Randomizer) Number(min, max int) int {
	span := int64(max - min + 1)
	v := int(r.absHash()%span) + min
	r.fold(int32(r.absHash()%999 + 1))
	return v
}

// Boolean returns a deterministic boolean draw.
//
// Without a bias it is equivalent to Number(0, 1) == 1. With a bias p it
// performs a two-outcome weighted choice: outcome true with weight p, outcome
// false with weight inverse(p). For p < 1 the inverse is 1-p, so p reads as a
// fill probability. For p >= 1 the inverse is nextPowerOfTen(p)-p, so p reads
// as an integer weight out of the next power of ten (75 means 75%, 5 means
// 50%, 1 means 10%).
func (r *Randomizer) Boolean(bias ...float64) bool {
	if len(bias) == 0 {
		return r.Number(0, 1) == 1
	}
	p := bias[0]
	idx, err := r.ChoiceIndex(2, []float64{p, inverse(p)})
	if err != nil {
		// Both weights zero. Treat as an unbiased draw rather than failing a
		// boolean call site.
		return r.Number(0, 1) == 1
	}
	return idx == 0
}

// inverse computes the counter-weight for a biased boolean draw.
func inverse(p float64) float64 {
	if p < 1 {
		return 1 - p
	}
	return nextPowerOfTen(p) - p
}

// nextPowerOfTen returns the smallest power of ten strictly greater than p.
func nextPowerOfTen(p float64) float64 {
	pow := 10.0
	for pow <= p {
		pow *= 10
	}
	return pow
}

// ChoiceIndex selects an index in [0, n). With nil weights the draw is
// uniform. A single-candidate set returns index 0 without consuming a draw,
// which keeps the draw count stable for degenerate configurations; the
// weight-length check still applies before that shortcut.
//
// With weights, entries of weight zero can never be selected and do not
// occupy space in the cumulative search. Weights are normalized to positive
// integers (fractions capped at two decimal places), a uniform integer is
// drawn in [1, totalWeight], and the ascending cumulative-weight array is
// binary-searched for the insertion point; an exact match selects that index.
//
// Returns ErrCodeWeightMismatch when len(weights) != n, and
// ErrCodeEmptyChoiceSet when n is zero or no entry has positive weight.
func (r *Randomizer) ChoiceIndex(n int, weights []float64) (int, error) {
	if n == 0 {
		return 0, errors.New(errors.ErrCodeEmptyChoiceSet, "cannot choose from an empty set")
	}
	if weights != nil && len(weights) != n {
		return 0, errors.New(errors.ErrCodeWeightMismatch,
			"got %d weights for %d items", len(weights), n)
	}
	if n == 1 {
		return 0, nil
	}
	if weights == nil {
		return r.Number(0, n-1), nil
	}

	ints := normalizeWeights(weights)

	// Cumulative weights over the selectable (nonzero) entries only.
	indices := make([]int, 0, n)
	cum := make([]int, 0, n)
	total := 0
	for i, w := range ints {
		if w <= 0 {
			continue
		}
		total += w
		indices = append(indices, i)
		cum = append(cum, total)
	}
	if total == 0 {
		return 0, errors.New(errors.ErrCodeEmptyChoiceSet, "all weights are zero")
	}

	draw := r.Number(1, total)
	// Insertion point into the ascending cumulative array; an exact match on
	// a boundary value selects that index.
	pos := sort.SearchInts(cum, draw)
	return indices[pos], nil
}

// Choice selects one element of items, optionally weighted. Pass nil weights
// for a uniform draw. See Randomizer.ChoiceIndex for the selection rules.
func Choice[T any](r *Randomizer, items []T, weights []float64) (T, error) {
	idx, err := r.ChoiceIndex(len(items), weights)
	if err != nil {
		var zero T
		return zero, err
	}
	return items[idx], nil
}

// normalizeWeights converts a weight vector to positive integers. Fractional
// weights are truncated to two decimal places and scaled up by a power of
// ten; the resulting vector is then divided by 10 for as long as every entry
// remains a multiple of 10, keeping totals small.
func normalizeWeights(weights []float64) []int {
	ints := make([]int, len(weights))
	for i, w := range weights {
		if w < 0 {
			w = 0
		}
		// Two-decimal cap, then scale to integer space.
		ints[i] = int(w*100 + 0.5)
	}
	for allMultiplesOfTen(ints) {
		for i := range ints {
			ints[i] /= 10
		}
	}
	return ints
}

// allMultiplesOfTen reports whether every entry is a multiple of 10 and at
// least one entry is nonzero. An all-zero vector stops the reduction loop.
func allMultiplesOfTen(ints []int) bool {
	any := false
	for _, v := range ints {
		if v%10 != 0 {
			return false
		}
		if v != 0 {
			any = true
		}
	}
	return any
}
