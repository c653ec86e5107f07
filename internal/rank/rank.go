// Package rank computes the manual ordering key of records that share a
// date. Ranks are unique only within one date group.
package rank

import (
	"errors"
	"fmt"
)

// ErrNotPermutation is returned when a reorder does not name every member
// of the date group exactly once.
var ErrNotPermutation = errors.New("order is not a permutation of the date group")

// Next returns the rank for one new record joining a group with the given
// existing ranks: max(existing, 0) + 1.
func Next(existing []float64) float64 {
	top := 0.0
	for _, r := range existing {
		if r > top {
			top = r
		}
	}
	return top + 1
}

// Assign returns n sequential ranks for a batch of new records inserted
// into the same group, in insertion order.
func Assign(existing []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	next := Next(existing)
	for i := range out {
		out[i] = next
		next++
	}
	return out
}

// Reorder returns the new rank of every member of a date group after the
// user arranged it as order. Old ranks are discarded: the record at
// position i gets rank i+1.
func Reorder(members, order []string) (map[string]float64, error) {
	if len(order) != len(members) {
		return nil, fmt.Errorf("%w: got %d ids for a group of %d", ErrNotPermutation, len(order), len(members))
	}

	inGroup := make(map[string]bool, len(members))
	for _, id := range members {
		inGroup[id] = true
	}

	ranks := make(map[string]float64, len(order))
	for i, id := range order {
		if !inGroup[id] {
			return nil, fmt.Errorf("%w: %s is not in the group", ErrNotPermutation, id)
		}
		if _, dup := ranks[id]; dup {
			return nil, fmt.Errorf("%w: %s appears twice", ErrNotPermutation, id)
		}
		ranks[id] = float64(i + 1)
	}
	return ranks, nil
}
