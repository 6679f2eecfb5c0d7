package engine

// SquareView is what one side is shown for a single square.
type SquareView struct {
	Square  Square `json:"square"`
	Visible bool   `json:"visible"`
	// Piece is the true occupant: always for the viewer's own pieces, for
	// opposing pieces only while the square is in view.
	Piece *Shape `json:"piece,omitempty"`
	// Memory is the last opposing piece seen here, shown while out of view.
	Memory *Shape `json:"memory,omitempty"`
	// Fallen is the first of the viewer's pieces captured on this square.
	Fallen *Shape `json:"fallen,omitempty"`
}

// View is a rendering snapshot for one colour, rows ordered from rank 8 down.
type View struct {
	Color   Color                  `json:"color"`
	Turn    Turn                   `json:"turn"`
	Outcome Outcome                `json:"outcome"`
	Squares [Size][Size]SquareView `json:"squares"`
}

// View builds c's snapshot from the last Vision(c) call.
func (b *Board) View(c Color) View {
	v := View{Color: c, Turn: b.turn, Outcome: b.outcome}
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			t := &b.tiles[x][y]
			sv := SquareView{Square: t.Square(), Visible: b.sight[c][x][y]}
			if p := t.occupant; p != nil && (sv.Visible || p.color == c) {
				s := p.Shape()
				sv.Piece = &s
			}
			if !sv.Visible {
				if m, ok := t.Memory(c); ok {
					sv.Memory = &m
				}
			}
			if p := t.taken[c]; p != nil {
				s := p.Shape()
				sv.Fallen = &s
			}
			v.Squares[y][x] = sv
		}
	}
	return v
}
