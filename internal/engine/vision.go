package engine

import (
	"cmp"
	"iter"
	"slices"
)

// Vision recomputes what c currently perceives: the sight grid and the set of
// visible pieces are rebuilt from scratch, and every tile in view refreshes
// c's memory of it. Once the game has ended every tile is in view.
func (b *Board) Vision(c Color) {
	b.seen[c] = make(map[PieceID]*Piece)
	b.sight[c] = [Size][Size]bool{}

	if b.turn == TurnEnded {
		b.reveal(c)
		return
	}
	for _, p := range b.pieces[c] {
		rulesFor(p.kind).sees(b, p.color, p.x, p.y, func(x, y int) {
			b.tiles[x][y].see(b, p)
		})
	}
}

// reveal shows every tile to c through a ghost piece that never enters play.
func (b *Board) reveal(c Color) {
	ghost := NewPiece(c, Pawn)
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			b.tiles[x][y].see(b, ghost)
		}
	}
}

// Visible returns the pieces seen by c during the last Vision call, ordered by
// identity.
func (b *Board) Visible(c Color) []*Piece {
	out := make([]*Piece, 0, len(b.seen[c]))
	for _, p := range b.seen[c] {
		out = append(out, p)
	}
	slices.SortFunc(out, func(p, q *Piece) int {
		return cmp.Compare(p.id, q.id)
	})
	return out
}

// InSight reports whether (x, y) was in c's view during the last Vision call.
func (b *Board) InSight(c Color, x, y int) bool {
	return InBounds(x, y) && b.sight[c][x][y]
}

// Sight computes the tiles c's pieces perceive right now without touching any
// memory or the visible set.
func (b *Board) Sight(c Color) [Size][Size]bool {
	var grid [Size][Size]bool
	if b.turn == TurnEnded {
		for x := range grid {
			for y := range grid[x] {
				grid[x][y] = true
			}
		}
		return grid
	}
	for _, p := range b.pieces[c] {
		rulesFor(p.kind).sees(b, p.color, p.x, p.y, func(x, y int) {
			grid[x][y] = true
		})
	}
	return grid
}

// SightOf yields the tiles a piece of kind k and colour c would perceive from
// sq on the current board.
func (b *Board) SightOf(k Kind, c Color, sq Square) iter.Seq[Square] {
	return func(yield func(Square) bool) {
		if !sq.InBounds() {
			return
		}
		stopped := false
		rulesFor(k).sees(b, c, sq.X, sq.Y, func(x, y int) {
			if stopped {
				return
			}
			if !yield(Square{X: x, Y: y}) {
				stopped = true
			}
		})
	}
}
