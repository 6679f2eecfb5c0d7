package testutil

import (
	"testing"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
)

// MustBoard loads a placement description or aborts the test.
func MustBoard(t testing.TB, layout string) *engine.Board {
	t.Helper()
	b, err := engine.NewBoardFromLayout(layout)
	if err != nil {
		t.Fatalf("NewBoardFromLayout(%q) failed: %v", layout, err)
	}
	return b
}

// MustMove decodes an algebraic move or aborts the test.
func MustMove(t testing.TB, s string) engine.Move {
	t.Helper()
	m, err := engine.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q) failed: %v", s, err)
	}
	return m
}

// Play executes an algebraic move and fails the test if it does not happen.
func Play(t testing.TB, b *engine.Board, s string) {
	t.Helper()
	moved, err := b.ReadMove(s)
	if err != nil {
		t.Fatalf("ReadMove(%q) failed: %v", s, err)
	}
	if !moved {
		t.Fatalf("ReadMove(%q) = false, want true", s)
	}
}
