// Package ai chooses moves for a side by a greedy lookahead over a coverage
// heuristic. Everything here reasons only from what the moving side knows:
// its own pieces, opposing pieces currently in its sight, and the shapes it
// remembers on squares it cannot see.
package ai

import "github.com/benbeisheim/fogchess-backend/internal/engine"

// KingPenalty is the score of a king that more enemies than friends see.
const KingPenalty = -1000

// Totals holds a heuristic total per colour, indexed by engine.Color.
type Totals [2]int

// unit is a piece as the evaluating side believes it to be.
type unit struct {
	shape engine.Shape
	at    engine.Square
}

// known lists the pieces c knows about. Remembered shapes only count on
// squares that are out of sight and not held by one of c's own pieces.
func known(b *engine.Board, c engine.Color) []unit {
	own := b.Pieces(c)
	units := make([]unit, 0, 2*len(own))
	for _, p := range own {
		units = append(units, unit{shape: p.Shape(), at: p.Square()})
	}

	sight := b.Sight(c)
	for x := 0; x < engine.Size; x++ {
		for y := 0; y < engine.Size; y++ {
			t := b.Tile(x, y)
			occ := t.Occupant()
			switch {
			case sight[x][y]:
				if occ != nil && occ.Color() != c {
					units = append(units, unit{shape: occ.Shape(), at: t.Square()})
				}
			case occ != nil && occ.Color() == c:
			default:
				if m, ok := t.Memory(c); ok && m.Color != c {
					units = append(units, unit{shape: m, at: t.Square()})
				}
			}
		}
	}
	return units
}

// Score is the coverage heuristic evaluated from c's knowledge. Each known
// piece gains one point of coverage per friendly piece that sees its square
// and loses one per enemy that does. Pawns, knights and kings see their own
// square and so count among their own defenders.
func Score(b *engine.Board, c engine.Color) Totals {
	units := known(b, c)

	var cover [engine.Size][engine.Size][2]int
	for _, u := range units {
		for sq := range b.SightOf(u.shape.Kind, u.shape.Color, u.at) {
			cover[sq.X][sq.Y][u.shape.Color]++
		}
	}

	var totals Totals
	for _, u := range units {
		seen := cover[u.at.X][u.at.Y]
		net := seen[u.shape.Color] - seen[u.shape.Color.Opposite()]
		totals[u.shape.Color] += rate(u.shape.Kind, net)
	}
	return totals
}

func rate(k engine.Kind, coverage int) int {
	if k == engine.King {
		if coverage < 0 {
			return KingPenalty
		}
		return 0
	}
	return k.Value() * coverage
}

// Objective is c's total minus the opponent's, both as c believes them.
func Objective(b *engine.Board, c engine.Color) int {
	t := Score(b, c)
	return t[c] - t[c.Opposite()]
}
