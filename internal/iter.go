// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package internal holds iterator helpers shared by the device and
// emulator packages.
package internal

import (
	"cmp"
	"iter"
	"maps"
	"slices"
)

// Concat2 yields each pair of every sequence, in order.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, value := range seq {
				if !yield(key, value) {
					return
				}
			}
		}
	}
}

// Sorted2 yields the pairs of a sequence ordered by key. A later duplicate
// key replaces an earlier one.
func Sorted2[K cmp.Ordered, V any](seq iter.Seq2[K, V]) iter.Seq2[K, V] {
	table := map[K]V{}
	for key, value := range seq {
		table[key] = value
	}
	keys := slices.Sorted(maps.Keys(table))

	return func(yield func(K, V) bool) {
		for _, key := range keys {
			if !yield(key, table[key]) {
				return
			}
		}
	}
}
