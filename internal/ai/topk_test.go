package ai

import (
	"testing"

	"github.com/benbeisheim/fogchess-backend/internal/testutil"
)

func TestTopK(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		scores     []int
		wantItems  []int
		wantScores []int
	}{
		{"keeps highest", 3, []int{1, 5, 3, 9, 2}, []int{3, 1, 2}, []int{9, 5, 3}},
		{"ties keep earliest", 2, []int{4, 4, 4}, []int{0, 1}, []int{4, 4}},
		{"later tie ranks after", 3, []int{2, 7, 2}, []int{1, 0, 2}, []int{7, 2, 2}},
		{"capacity one", 1, []int{-3, -1, -1, -2}, []int{1}, []int{-1}},
		{"under capacity", 5, []int{0, -5}, []int{0, 1}, []int{0, -5}},
		{"empty", 2, nil, []int{}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := newTopK[int](tt.capacity)
			for i, s := range tt.scores {
				k.add(i, s)
			}
			testutil.AssertEqual(t, k.items, tt.wantItems, "items")
			testutil.AssertEqual(t, k.scores, tt.wantScores, "scores")
			testutil.AssertTrue(t, k.len() <= tt.capacity, "len %d within capacity", k.len())
		})
	}
}
