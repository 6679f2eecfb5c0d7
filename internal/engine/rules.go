package engine

// rules is the movement and vision behaviour of one piece kind, evaluated for
// a piece of colour c standing on (x, y).
type rules interface {
	// moves appends every pseudo-legal move to out.
	moves(b *Board, c Color, x, y int, out []Move) []Move
	// sees calls visit for every tile the piece perceives.
	sees(b *Board, c Color, x, y int, visit func(x, y int))
	canTake(dx, dy int) bool
	// path returns the cell a traversal of (dx, dy) actually lands on.
	path(b *Board, x, y, dx, dy int) (int, int)
}

var (
	bishopRules = sliderRules{dirs: diagonals}
	rookRules   = sliderRules{dirs: orthogonals}

	kindRules = [numKinds]rules{
		Pawn:   pawnRules{},
		Knight: leaperRules{offsets: knightJumps},
		Bishop: bishopRules,
		Rook:   rookRules,
		Queen:  queenRules{bishop: bishopRules, rook: rookRules},
		King:   leaperRules{offsets: kingSteps},
	}
)

func rulesFor(k Kind) rules {
	return kindRules[k]
}

// enterable reports whether a piece of colour c may finish on (x, y).
func (b *Board) enterable(c Color, x, y int) bool {
	if !InBounds(x, y) {
		return false
	}
	occupant := b.tiles[x][y].occupant
	return occupant == nil || occupant.color != c
}

type pawnRules struct{}

func startRow(c Color) int {
	if c == White {
		return Size - 2
	}
	return 1
}

func (pawnRules) moves(b *Board, c Color, x, y int, out []Move) []Move {
	dy := c.Sign()
	from := Square{X: x, Y: y}
	if InBounds(x, y+dy) && b.tiles[x][y+dy].occupant == nil {
		out = append(out, NewMove(from, Square{X: x, Y: y + dy}))
		if y == startRow(c) && InBounds(x, y+2*dy) && b.tiles[x][y+2*dy].occupant == nil {
			out = append(out, NewMove(from, Square{X: x, Y: y + 2*dy}))
		}
	}
	for _, dx := range [2]int{-1, 1} {
		tx, ty := x+dx, y+dy
		if !InBounds(tx, ty) {
			continue
		}
		if target := b.tiles[tx][ty].occupant; target != nil && target.color != c {
			out = append(out, NewMove(from, Square{X: tx, Y: ty}))
		}
	}
	return out
}

func (pawnRules) sees(b *Board, c Color, x, y int, visit func(x, y int)) {
	visit(x, y)
	dy := c.Sign()
	for _, dx := range [2]int{-1, 1} {
		if InBounds(x+dx, y+dy) {
			visit(x+dx, y+dy)
		}
	}
}

// A pawn only captures sideways-forward.
func (pawnRules) canTake(dx, dy int) bool {
	return dx != 0
}

func (pawnRules) path(b *Board, x, y, dx, dy int) (int, int) {
	return x + dx, y + dy
}

// leaperRules covers pieces that jump to fixed offsets: Knight and King.
type leaperRules struct {
	offsets [][2]int
}

func (r leaperRules) moves(b *Board, c Color, x, y int, out []Move) []Move {
	from := Square{X: x, Y: y}
	for _, o := range r.offsets {
		if b.enterable(c, x+o[0], y+o[1]) {
			out = append(out, NewMove(from, Square{X: x + o[0], Y: y + o[1]}))
		}
	}
	return out
}

func (r leaperRules) sees(b *Board, c Color, x, y int, visit func(x, y int)) {
	visit(x, y)
	for _, o := range r.offsets {
		if InBounds(x+o[0], y+o[1]) {
			visit(x+o[0], y+o[1])
		}
	}
}

func (leaperRules) canTake(dx, dy int) bool { return true }

func (leaperRules) path(b *Board, x, y, dx, dy int) (int, int) {
	return x + dx, y + dy
}

// sliderRules walks rays: Bishop on diagonals, Rook on orthogonals.
type sliderRules struct {
	dirs [][2]int
}

func (r sliderRules) moves(b *Board, c Color, x, y int, out []Move) []Move {
	from := Square{X: x, Y: y}
	for _, d := range r.dirs {
		for step := range b.Walk(x, y, d[0], d[1]) {
			if step.Piece != nil && step.Piece.color == c {
				break
			}
			out = append(out, NewMove(from, Square{X: step.X, Y: step.Y}))
		}
	}
	return out
}

func (r sliderRules) sees(b *Board, c Color, x, y int, visit func(x, y int)) {
	for _, d := range r.dirs {
		for step := range b.Walk(x, y, d[0], d[1]) {
			visit(step.X, step.Y)
		}
	}
}

func (sliderRules) canTake(dx, dy int) bool { return true }

// aligned reports whether (dx, dy) lies on one of the slider's rays.
func (r sliderRules) aligned(dx, dy int) bool {
	if dx == 0 && dy == 0 {
		return false
	}
	sx, sy := sign(dx), sign(dy)
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return false
	}
	for _, d := range r.dirs {
		if d[0] == sx && d[1] == sy {
			return true
		}
	}
	return false
}

// path walks at most max(|dx|, |dy|) cells and stops early on a blocker, so a
// blocked slide lands short of the requested square.
func (r sliderRules) path(b *Board, x, y, dx, dy int) (int, int) {
	if !r.aligned(dx, dy) {
		return x, y
	}
	n := max(abs(dx), abs(dy))
	lx, ly := x, y
	taken := 0
	for step := range b.Walk(x, y, sign(dx), sign(dy)) {
		lx, ly = step.X, step.Y
		taken++
		if taken == n {
			break
		}
	}
	return lx, ly
}

// queenRules composes the bishop and rook behaviour.
type queenRules struct {
	bishop sliderRules
	rook   sliderRules
}

func (q queenRules) moves(b *Board, c Color, x, y int, out []Move) []Move {
	out = q.bishop.moves(b, c, x, y, out)
	return q.rook.moves(b, c, x, y, out)
}

func (q queenRules) sees(b *Board, c Color, x, y int, visit func(x, y int)) {
	q.bishop.sees(b, c, x, y, visit)
	q.rook.sees(b, c, x, y, visit)
}

func (queenRules) canTake(dx, dy int) bool { return true }

func (q queenRules) path(b *Board, x, y, dx, dy int) (int, int) {
	if q.bishop.aligned(dx, dy) {
		return q.bishop.path(b, x, y, dx, dy)
	}
	return q.rook.path(b, x, y, dx, dy)
}
