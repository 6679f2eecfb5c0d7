package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/testutil"
)

func TestSelfPlay_StopsAtMaxMoves(t *testing.T) {
	b := testutil.MustBoard(t, engine.StandardLayout)
	var out bytes.Buffer

	err := selfPlay(context.Background(), &out, b, 1, 2, 2, 6, false)
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, b.HistoryLen() <= 6, "history %d", b.HistoryLen())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	testutil.AssertEqual(t, len(lines), b.HistoryLen(), "one line per move")
}

func TestReport_RendersBothViews(t *testing.T) {
	b, err := engine.Replay(mustPlacements(t), []string{"e2e4", "d7d5", "e4d5"})
	testutil.AssertNoError(t, err)

	var out bytes.Buffer
	report(&out, b)
	text := out.String()

	testutil.AssertTrue(t, strings.Contains(text, "white's view:"), "white view printed")
	testutil.AssertTrue(t, strings.Contains(text, "black's view:"), "black view printed")
	testutil.AssertTrue(t, strings.Contains(text, "history: e2e4 d7d5 e4d5"), "history printed")
	testutil.AssertTrue(t, strings.Contains(text, "black lost: 1xpawn"), "losses printed:\n%s", text)
	testutil.AssertTrue(t, strings.Contains(text, "outcome: ongoing"), "outcome printed")
}

func TestCell(t *testing.T) {
	king := &engine.Shape{Kind: engine.King, Color: engine.Black}
	tests := []struct {
		sq   engine.SquareView
		want string
	}{
		{engine.SquareView{Visible: true, Piece: king}, " k "},
		{engine.SquareView{Memory: king}, "[k]"},
		{engine.SquareView{Visible: true}, " . "},
		{engine.SquareView{}, " ~ "},
		{engine.SquareView{Piece: &engine.Shape{Kind: engine.Knight, Color: engine.White}}, " N "},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, cell(tt.sq), tt.want)
	}
}

func TestSplitMoves(t *testing.T) {
	testutil.AssertEqual(t, splitMoves(" e2e4, d7d5,,"), []string{"e2e4", "d7d5"})
}

func mustPlacements(t *testing.T) []engine.Placement {
	t.Helper()
	p, err := loadPlacements("")
	testutil.AssertNoError(t, err)
	return p
}
