package engine_test

import (
	"errors"
	"testing"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/testutil"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    engine.Move
		wantErr bool
	}{
		{name: "pawn opener", in: "e2e4", want: engine.Move{FromX: 4, FromY: 6, ToX: 4, ToY: 4}},
		{name: "corner to corner", in: "a1h8", want: engine.Move{FromX: 0, FromY: 7, ToX: 7, ToY: 0}},
		{name: "too short", in: "e2e", wantErr: true},
		{name: "file off board", in: "i2e4", wantErr: true},
		{name: "rank off board", in: "e0e4", wantErr: true},
		{name: "rank nine", in: "e2e9", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.ParseMove(tt.in)
			if tt.wantErr {
				if !errors.Is(err, engine.ErrInvalidMove) {
					t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", tt.in, err)
				}
				return
			}
			testutil.AssertNoError(t, err, "ParseMove(%q)", tt.in)
			testutil.AssertEqual(t, got, tt.want)
			if s := got.String(); s != tt.in {
				t.Errorf("Move.String() = %q, want %q", s, tt.in)
			}
		})
	}
}

func TestSquareString(t *testing.T) {
	tests := []struct {
		sq   engine.Square
		want string
	}{
		{engine.Square{X: 0, Y: 0}, "a8"},
		{engine.Square{X: 0, Y: 7}, "a1"},
		{engine.Square{X: 4, Y: 6}, "e2"},
		{engine.Square{X: 7, Y: 7}, "h1"},
	}
	for _, tt := range tests {
		if got := tt.sq.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.sq, got, tt.want)
		}
	}
}
