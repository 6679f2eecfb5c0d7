package ai

import (
	"testing"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/testutil"
)

// mirror swaps colours and flips ranks so every piece keeps its role.
func mirror(t *testing.T, layout string) *engine.Board {
	t.Helper()
	placements, err := engine.ParseLayoutString(layout)
	testutil.AssertNoError(t, err)
	for i := range placements {
		placements[i].Color = placements[i].Color.Opposite()
		placements[i].Y = engine.Size - 1 - placements[i].Y
	}
	b := engine.NewBoard()
	testutil.AssertNoError(t, b.Load(placements))
	return b
}

func TestScore_ColorRelabelSymmetry(t *testing.T) {
	layouts := []string{
		engine.StandardLayout,
		"white:Kd1,Ta1;black:Kd8",
		"white:Ke1,Dd4,pe4,Pf3;black:Ke8,pd5,Lc6,Tf5",
		"white:Ka1,pb2;black:Kb3,Tc8",
	}
	for _, layout := range layouts {
		t.Run(layout, func(t *testing.T) {
			b := testutil.MustBoard(t, layout)
			m := mirror(t, layout)
			for _, c := range engine.Colors {
				got := Score(m, c.Opposite())
				want := Score(b, c)
				testutil.AssertEqual(t, got, Totals{want[engine.Black], want[engine.White]}, "evaluated by %s", c)
			}
		})
	}
}

func TestScore_KingPenalty(t *testing.T) {
	// Two rooks see e8; the king only counts itself.
	b := testutil.MustBoard(t, "white:Te2,Ta8,Ka1;black:Ke8")
	for _, c := range engine.Colors {
		got := Score(b, c)
		testutil.AssertEqual(t, got[engine.Black], KingPenalty, "black king under attack, evaluated by %s", c)
	}
}

func TestScore_SelfCoverage(t *testing.T) {
	tests := []struct {
		name   string
		layout string
		want   int
	}{
		// A knight counts itself among its defenders.
		{"lone knight", "white:Pd4", 3},
		// A rook does not see its own square.
		{"lone rook", "white:Td4", 0},
		{"rook defended by knight", "white:Td4,Pc2", 5 + 3},
		{"bishop attacked by rook", "white:Lc4;black:Tc8", -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := testutil.MustBoard(t, tt.layout)
			testutil.AssertEqual(t, Score(b, engine.White)[engine.White], tt.want)
		})
	}
}

func TestScore_UsesMemoryOutOfSight(t *testing.T) {
	b := testutil.MustBoard(t, "white:Ka1,Pb1;black:Kh8,Th2")
	// White remembers the rook on h2 from the opening layout although nothing
	// white sees it, so the rook threatens b1 in White's reckoning too.
	before := Score(b, engine.White)

	testutil.Play(t, b, "h2h7")
	b.Vision(engine.White)
	after := Score(b, engine.White)

	testutil.AssertEqual(t, after, before, "unseen move changes nothing for white")
	testutil.AssertTrue(t, Score(b, engine.Black) != before, "black knows the rook moved")
}

func TestObjective(t *testing.T) {
	b := testutil.MustBoard(t, "white:Te2,Ta8,Ka1;black:Ke8")
	testutil.AssertEqual(t, Objective(b, engine.White), 0-KingPenalty)
	testutil.AssertEqual(t, Objective(b, engine.Black), KingPenalty)
}
