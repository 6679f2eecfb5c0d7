package engine

import (
	"fmt"
	"slices"
)

// Undo holds exactly what Apply changed so Revert can restore it.
type Undo struct {
	Move     Move
	piece    *Piece
	captured *Piece
	index    int
}

// Apply moves the occupant of m's source to m's destination in place,
// capturing whatever stands there. It does not validate the move and does not
// touch history, turn, memory or capture records; pair every Apply with a
// Revert. Used by the search to avoid cloning the board.
func (b *Board) Apply(m Move) (Undo, error) {
	if !InBounds(m.FromX, m.FromY) || !InBounds(m.ToX, m.ToY) {
		return Undo{}, fmt.Errorf("%w: %v", ErrInvalidCoordinate, m)
	}
	src := &b.tiles[m.FromX][m.FromY]
	p := src.occupant
	if p == nil {
		return Undo{}, fmt.Errorf("%w: %s", ErrNoOccupant, m.From())
	}
	dst := &b.tiles[m.ToX][m.ToY]
	u := Undo{Move: m, piece: p, index: -1}
	if victim := dst.occupant; victim != nil {
		u.captured = victim
		u.index = b.dropFromRoster(victim)
		victim.alive = false
	}
	src.set(nil)
	dst.set(p)
	return u, nil
}

// Revert undoes an Apply. Reverts must happen in reverse order of the applies.
func (b *Board) Revert(u Undo) {
	m := u.Move
	b.tiles[m.ToX][m.ToY].set(u.captured)
	b.tiles[m.FromX][m.FromY].set(u.piece)
	if v := u.captured; v != nil {
		v.alive = true
		roster := b.pieces[v.color]
		i := u.index
		if i < 0 || i > len(roster) {
			i = len(roster)
		}
		b.pieces[v.color] = slices.Insert(roster, i, v)
	}
}

// Clone returns an independent copy of b. Piece identities, roster order,
// memory, capture records and history are preserved.
func (b *Board) Clone() *Board {
	c := &Board{
		captured: b.captured,
		sight:    b.sight,
		turn:     b.turn,
		next:     b.next,
		outcome:  b.outcome,
		history:  slices.Clone(b.history),
	}
	copies := make(map[*Piece]*Piece)
	dup := func(p *Piece) *Piece {
		if p == nil {
			return nil
		}
		if q, ok := copies[p]; ok {
			return q
		}
		q := *p
		copies[p] = &q
		return &q
	}

	for _, color := range Colors {
		c.pieces[color] = make([]*Piece, len(b.pieces[color]))
		for i, p := range b.pieces[color] {
			c.pieces[color][i] = dup(p)
		}
		c.seen[color] = make(map[PieceID]*Piece, len(b.seen[color]))
		for id, p := range b.seen[color] {
			c.seen[color][id] = dup(p)
		}
	}
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			t := &b.tiles[x][y]
			c.tiles[x][y] = Tile{
				x:        x,
				y:        y,
				occupant: dup(t.occupant),
				memory:   t.memory,
				taken:    [2]*Piece{dup(t.taken[White]), dup(t.taken[Black])},
			}
		}
	}
	return c
}
