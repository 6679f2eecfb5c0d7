// Package engine implements the fog-of-war chess rules: pieces, tiles, the
// board, vision with per-colour memory, and move execution.
//
// A Board is not safe for concurrent use. Moves, vision refreshes and search
// make/unmake cycles on the same board must be serialized by the caller.
package engine

import (
	"fmt"
	"slices"
)

// Board is the 8x8 grid plus rosters, vision state, turn and history.
type Board struct {
	tiles    [Size][Size]Tile
	pieces   [2][]*Piece
	seen     [2]map[PieceID]*Piece
	sight    [2][Size][Size]bool
	captured [2][numKinds]int
	turn     Turn
	next     Color
	outcome  Outcome
	history  []Move
}

// NewBoard returns an empty board waiting for White's first turn.
func NewBoard() *Board {
	b := &Board{turn: TurnWaiting, next: White}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			b.tiles[x][y] = Tile{x: x, y: y}
		}
	}
	for _, c := range Colors {
		b.seen[c] = make(map[PieceID]*Piece)
	}
	return b
}

// NewBoardFromLayout parses a placement description and loads it.
func NewBoardFromLayout(layout string) (*Board, error) {
	placements, err := ParseLayoutString(layout)
	if err != nil {
		return nil, err
	}
	b := NewBoard()
	if err := b.Load(placements); err != nil {
		return nil, err
	}
	return b, nil
}

// Load places pieces. Each side starts out remembering the opposing pieces of
// the initial layout.
func (b *Board) Load(placements []Placement) error {
	for _, pl := range placements {
		if !InBounds(pl.X, pl.Y) {
			return &LayoutError{Entry: pl.String(), Reason: "square off the board"}
		}
		t := &b.tiles[pl.X][pl.Y]
		if t.occupant != nil {
			return &LayoutError{Entry: pl.String(), Reason: "square already occupied"}
		}
		p := NewPiece(pl.Color, pl.Kind)
		p.alive = true
		t.set(p)
		t.remember(p)
		b.pieces[p.color] = append(b.pieces[p.color], p)
	}
	return nil
}

// Tile returns the tile at (x, y), or nil when the coordinate is off the board.
func (b *Board) Tile(x, y int) *Tile {
	if !InBounds(x, y) {
		return nil
	}
	return &b.tiles[x][y]
}

// PieceAt returns the occupant of (x, y), or nil.
func (b *Board) PieceAt(x, y int) *Piece {
	if t := b.Tile(x, y); t != nil {
		return t.occupant
	}
	return nil
}

// Pieces returns the live roster of c in load order.
func (b *Board) Pieces(c Color) []*Piece {
	return slices.Clone(b.pieces[c])
}

func (b *Board) Turn() Turn       { return b.turn }
func (b *Board) Next() Color      { return b.next }
func (b *Board) Outcome() Outcome { return b.outcome }
func (b *Board) HistoryLen() int  { return len(b.history) }
func (b *Board) Ended() bool      { return b.turn == TurnEnded }

// History returns the executed moves in algebraic form.
func (b *Board) History() []string {
	out := make([]string, len(b.history))
	for i, m := range b.history {
		out[i] = m.String()
	}
	return out
}

// StartTurn hands the board to the side that is due to move.
func (b *Board) StartTurn() (Color, error) {
	switch b.turn {
	case TurnEnded:
		return b.next, ErrGameEnded
	case TurnWaiting:
		b.turn = TurnOf(b.next)
		return b.next, nil
	}
	return b.next, ErrTurnInProgress
}

// PieceMoves returns the pseudo-legal moves of a live piece.
func (b *Board) PieceMoves(p *Piece) []Move {
	if p == nil || !p.alive {
		return nil
	}
	return rulesFor(p.kind).moves(b, p.color, p.x, p.y, nil)
}

// LegalMoves returns every move of c, piece by piece in roster order.
func (b *Board) LegalMoves(c Color) []Move {
	var out []Move
	for _, p := range b.pieces[c] {
		out = rulesFor(p.kind).moves(b, p.color, p.x, p.y, out)
	}
	return out
}

// IsValidMove reports whether the occupant of (x, y) generates (dx, dy).
func (b *Board) IsValidMove(x, y, dx, dy int) bool {
	p := b.PieceAt(x, y)
	if p == nil {
		return false
	}
	to := Square{X: x + dx, Y: y + dy}
	for _, m := range b.PieceMoves(p) {
		if m.To() == to {
			return true
		}
	}
	return false
}

// Path returns the cell the occupant of (x, y) lands on when travelling
// (dx, dy). A slide stops at the first occupied cell on its way.
func (b *Board) Path(x, y, dx, dy int) (int, int, error) {
	p := b.PieceAt(x, y)
	if p == nil {
		return x, y, fmt.Errorf("%w: %s", ErrNoOccupant, Square{X: x, Y: y})
	}
	lx, ly := rulesFor(p.kind).path(b, x, y, dx, dy)
	return lx, ly, nil
}

// DoMove executes a move and refreshes the vision of both sides. Illegal or
// blocked moves, an empty source and a source equal to the destination leave
// the board untouched and report false without an error.
func (b *Board) DoMove(x1, y1, x2, y2 int) (bool, error) {
	if !InBounds(x1, y1) || !InBounds(x2, y2) {
		return false, fmt.Errorf("%w: (%d,%d)->(%d,%d)", ErrInvalidCoordinate, x1, y1, x2, y2)
	}
	if b.turn == TurnEnded {
		return false, ErrGameEnded
	}
	if x1 == x2 && y1 == y2 {
		return false, nil
	}
	src := &b.tiles[x1][y1]
	p := src.occupant
	if p == nil {
		return false, nil
	}

	dx, dy := x2-x1, y2-y1
	if !b.IsValidMove(x1, y1, dx, dy) {
		return false, nil
	}
	r := rulesFor(p.kind)
	if lx, ly := r.path(b, x1, y1, dx, dy); lx != x2 || ly != y2 {
		return false, nil
	}
	dst := &b.tiles[x2][y2]
	if dst.occupant != nil && !r.canTake(dx, dy) {
		return false, nil
	}

	if dst.occupant != nil {
		b.capture(dst)
	}
	src.set(nil)
	dst.set(p)

	b.history = append(b.history, Move{FromX: x1, FromY: y1, ToX: x2, ToY: y2})
	b.turn = TurnWaiting
	b.next = p.color.Opposite()
	b.checkWin()
	for _, c := range Colors {
		b.Vision(c)
	}
	return true, nil
}

// ReadMove decodes an algebraic move such as "e2e4" and executes it.
func (b *Board) ReadMove(s string) (bool, error) {
	m, err := ParseMove(s)
	if err != nil {
		return false, err
	}
	return b.DoMove(m.FromX, m.FromY, m.ToX, m.ToY)
}

// capture removes the occupant of t from the tile and from its roster in one
// step and records it as the first capture of its colour on t.
func (b *Board) capture(t *Tile) *Piece {
	victim := t.occupant
	b.dropFromRoster(victim)
	victim.alive = false
	if t.taken[victim.color] == nil {
		t.taken[victim.color] = victim
	}
	b.captured[victim.color][victim.kind]++
	for _, c := range Colors {
		delete(b.seen[c], victim.id)
	}
	t.occupant = nil
	return victim
}

// dropFromRoster removes p from its roster and returns its former index.
func (b *Board) dropFromRoster(p *Piece) int {
	roster := b.pieces[p.color]
	i := slices.Index(roster, p)
	if i >= 0 {
		b.pieces[p.color] = slices.Delete(roster, i, i+1)
	}
	return i
}

func (b *Board) hasKing(c Color) bool {
	for _, p := range b.pieces[c] {
		if p.kind == King {
			return true
		}
	}
	return false
}

// evaluateOutcome reports the result implied by which kings are still alive.
func (b *Board) evaluateOutcome() Outcome {
	white, black := b.hasKing(White), b.hasKing(Black)
	switch {
	case white && black:
		return Ongoing
	case white:
		return WhiteWins
	case black:
		return BlackWins
	}
	return Tie
}

// Resign ends the game in favour of c's opponent.
func (b *Board) Resign(c Color) error {
	if b.turn == TurnEnded {
		return ErrGameEnded
	}
	b.outcome = WhiteWins
	if c == White {
		b.outcome = BlackWins
	}
	b.turn = TurnEnded
	for _, side := range Colors {
		b.Vision(side)
	}
	return nil
}

// checkWin ends the game once a king is gone. The next Vision call reveals
// the whole board.
func (b *Board) checkWin() {
	o := b.evaluateOutcome()
	if o == Ongoing {
		return
	}
	b.outcome = o
	b.turn = TurnEnded
}

// Remaining counts the live pieces of c by kind.
func (b *Board) Remaining(c Color) map[Kind]int {
	out := make(map[Kind]int, numKinds)
	for _, k := range Kinds {
		out[k] = 0
	}
	for _, p := range b.pieces[c] {
		out[p.kind]++
	}
	return out
}

// Captured counts the pieces of c lost so far by kind.
func (b *Board) Captured(c Color) map[Kind]int {
	out := make(map[Kind]int, numKinds)
	for _, k := range Kinds {
		out[k] = b.captured[c][k]
	}
	return out
}
