package ai

import (
	"slices"
	"sort"
)

// topK keeps the highest scoring entries up to a fixed capacity, best first.
// An entry never displaces an earlier one with the same score.
type topK[T any] struct {
	capacity int
	scores   []int
	items    []T
}

func newTopK[T any](capacity int) *topK[T] {
	return &topK[T]{
		capacity: capacity,
		scores:   make([]int, 0, capacity+1),
		items:    make([]T, 0, capacity+1),
	}
}

func (k *topK[T]) add(item T, score int) {
	i := sort.Search(len(k.scores), func(i int) bool { return k.scores[i] < score })
	if i >= k.capacity {
		return
	}
	k.scores = slices.Insert(k.scores, i, score)
	k.items = slices.Insert(k.items, i, item)
	if len(k.scores) > k.capacity {
		k.scores = k.scores[:k.capacity]
		k.items = k.items[:k.capacity]
	}
}

func (k *topK[T]) len() int { return len(k.items) }
