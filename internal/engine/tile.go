package engine

// memo is what one colour remembers about a tile. source is the identity of
// the piece it was taken from, used only to notice that the tile changed.
type memo struct {
	shape  Shape
	source PieceID
}

// Tile is one board cell. It owns its occupant, one memory slot per colour and
// the first piece of each colour captured on it.
type Tile struct {
	x, y     int
	occupant *Piece
	memory   [2]*memo
	taken    [2]*Piece
}

func (t *Tile) X() int           { return t.x }
func (t *Tile) Y() int           { return t.y }
func (t *Tile) Square() Square   { return Square{X: t.x, Y: t.y} }
func (t *Tile) Occupant() *Piece { return t.occupant }

// Memory returns what c last saw on this tile, if anything.
func (t *Tile) Memory(c Color) (Shape, bool) {
	if m := t.memory[c]; m != nil {
		return m.shape, true
	}
	return Shape{}, false
}

// Taken returns the first piece of colour c captured on this tile.
func (t *Tile) Taken(c Color) *Piece {
	return t.taken[c]
}

func (t *Tile) set(p *Piece) {
	t.occupant = p
	if p != nil {
		p.x, p.y = t.x, t.y
	}
}

// remember seeds the memory of the side opposing p when a layout is loaded.
func (t *Tile) remember(p *Piece) {
	t.memory[p.color.Opposite()] = &memo{shape: p.Shape(), source: p.id}
}

// see registers this tile in the vision of by. A stale memory is replaced by
// a snapshot of an opposing occupant or dropped; one's own pieces are never
// remembered since they are never hidden from their own side.
func (t *Tile) see(b *Board, by *Piece) {
	c := by.color
	b.sight[c][t.x][t.y] = true

	m := t.memory[c]
	switch {
	case t.occupant == nil || t.occupant.color == c:
		t.memory[c] = nil
	case m == nil || m.source != t.occupant.id:
		t.memory[c] = &memo{shape: t.occupant.Shape(), source: t.occupant.id}
	}

	if t.occupant != nil {
		b.seen[c][t.occupant.id] = t.occupant
	}
}
