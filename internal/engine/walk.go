package engine

import "iter"

// Step is one cell of a ray walk and whatever stands on it.
type Step struct {
	Piece *Piece
	X, Y  int
}

var (
	diagonals   = [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	orthogonals = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	knightJumps = [][2]int{{-2, -1}, {-2, 1}, {2, -1}, {2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}}
	kingSteps   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// Walk steps from (x, y) along (dx, dy). The first cell stepped into is always
// yielded; the walk ends at the board edge or right after an occupied cell.
func (b *Board) Walk(x, y, dx, dy int) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		if dx == 0 && dy == 0 {
			return
		}
		cx, cy := x+dx, y+dy
		for InBounds(cx, cy) {
			occupant := b.tiles[cx][cy].occupant
			if !yield(Step{Piece: occupant, X: cx, Y: cy}) {
				return
			}
			if occupant != nil {
				return
			}
			cx += dx
			cy += dy
		}
	}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
