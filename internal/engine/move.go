package engine

import "fmt"

// Size is the board edge length.
const Size = 8

// Square is a grid coordinate. X is the file (0 = a), Y the row (0 = rank 8).
type Square struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// InBounds reports whether (x, y) lies on the board.
func InBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

func (s Square) InBounds() bool {
	return InBounds(s.X, s.Y)
}

// String returns the algebraic name, e.g. "e4".
func (s Square) String() string {
	return fmt.Sprintf("%c%d", s.X+'a', Size-s.Y)
}

// ParseSquare decodes a two character algebraic square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: square %q", ErrInvalidCoordinate, s)
	}
	sq := Square{X: int(s[0]) - 'a', Y: Size - (int(s[1]) - '0')}
	if !sq.InBounds() {
		return Square{}, fmt.Errorf("%w: square %q", ErrInvalidCoordinate, s)
	}
	return sq, nil
}

// Move is a from/to pair of grid coordinates.
type Move struct {
	FromX int `json:"fromX"`
	FromY int `json:"fromY"`
	ToX   int `json:"toX"`
	ToY   int `json:"toY"`
}

// NewMove builds a move between two squares.
func NewMove(from, to Square) Move {
	return Move{FromX: from.X, FromY: from.Y, ToX: to.X, ToY: to.Y}
}

func (m Move) From() Square { return Square{X: m.FromX, Y: m.FromY} }
func (m Move) To() Square   { return Square{X: m.ToX, Y: m.ToY} }

// String is the four character form sent to a remote peer, e.g. "e2e4".
func (m Move) String() string {
	return m.From().String() + m.To().String()
}

// ParseMove decodes "<fileFrom><rankFrom><fileTo><rankTo>".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q: %w", ErrInvalidMove, s, err)
	}
	return NewMove(from, to), nil
}
