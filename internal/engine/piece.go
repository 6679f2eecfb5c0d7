package engine

import (
	"fmt"
	"sync/atomic"
)

// Kind is a piece type.
type Kind int

const (
	Pawn Kind = iota
	Knight
	Bishop
	Rook
	Queen
	King
	numKinds
)

// Kinds lists every piece type in value-table order.
var Kinds = [numKinds]Kind{Pawn, Knight, Bishop, Rook, Queen, King}

var (
	kindNames    = [numKinds]string{"pawn", "knight", "bishop", "rook", "queen", "king"}
	kindLetters  = [numKinds]byte{'P', 'N', 'B', 'R', 'Q', 'K'}
	layoutLetter = [numKinds]byte{'p', 'P', 'L', 'T', 'D', 'K'}
	kindValues   = [numKinds]int{0, 3, 3, 5, 10, 0}
)

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Letter is the notation letter (P N B R Q K).
func (k Kind) Letter() byte {
	if k < 0 || k >= numKinds {
		return '?'
	}
	return kindLetters[k]
}

// LayoutLetter is the letter the placement file format uses for k.
func (k Kind) LayoutLetter() byte {
	if k < 0 || k >= numKinds {
		return '?'
	}
	return layoutLetter[k]
}

// Value is the material weight used by the coverage heuristic.
func (k Kind) Value() int {
	if k < 0 || k >= numKinds {
		return 0
	}
	return kindValues[k]
}

func kindFromLayout(b byte) (Kind, bool) {
	for k, l := range layoutLetter {
		if l == b {
			return Kind(k), true
		}
	}
	return Pawn, false
}

// ParseKind accepts the lower-case kind name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return Pawn, fmt.Errorf("unknown piece kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// PieceID identifies a piece for its whole life. Two pieces are never equal by
// attributes alone.
type PieceID uint64

var pieceCounter atomic.Uint64

func nextPieceID() PieceID {
	return PieceID(pieceCounter.Add(1))
}

// Piece is a live (or captured) piece. Its coordinates match the tile that
// holds it while it is alive.
type Piece struct {
	id    PieceID
	color Color
	kind  Kind
	x, y  int
	alive bool
}

// NewPiece creates an unplaced piece with a fresh identity.
func NewPiece(c Color, k Kind) *Piece {
	return &Piece{id: nextPieceID(), color: c, kind: k, x: -1, y: -1}
}

func (p *Piece) ID() PieceID    { return p.id }
func (p *Piece) Color() Color   { return p.color }
func (p *Piece) Kind() Kind     { return p.kind }
func (p *Piece) X() int         { return p.x }
func (p *Piece) Y() int         { return p.y }
func (p *Piece) Alive() bool    { return p.alive }
func (p *Piece) Square() Square { return Square{X: p.x, Y: p.y} }

// Shape drops the identity of p, leaving what an observer can remember.
func (p *Piece) Shape() Shape {
	return Shape{Kind: p.kind, Color: p.color}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s %s %d", p.color, p.kind, p.id)
}

// Shape is a remembered piece: kind and colour, no identity.
type Shape struct {
	Kind  Kind  `json:"kind"`
	Color Color `json:"color"`
}
