package engine

import (
	"fmt"
	"io"
	"strings"
)

// StandardLayout is the usual chess starting position in placement syntax.
const StandardLayout = `white: Ta1h1, Pb1g1, Lc1f1, Dd1, Ke1, pa2b2c2d2e2f2g2h2;
black: Ta8h8, Pb8g8, Lc8f8, Dd8, Ke8, pa7b7c7d7e7f7g7h7;`

// Placement puts one piece on one square when a board is loaded.
type Placement struct {
	Color Color
	Kind  Kind
	X, Y  int
}

func (p Placement) String() string {
	return fmt.Sprintf("%s:%c%s", p.Color, p.Kind.LayoutLetter(), Square{X: p.X, Y: p.Y})
}

// ParseLayout reads a placement description. Whitespace is insignificant.
// Sections are separated by ';' and look like "white:Ke1,pa2b2"; each group
// starts with a piece letter (p pawn, P knight, L bishop, T rook, D queen,
// K king) followed by one or more file/rank pairs.
func ParseLayout(r io.Reader) ([]Placement, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	return ParseLayoutString(string(raw))
}

// ParseLayoutString is ParseLayout over a string.
func ParseLayoutString(layout string) ([]Placement, error) {
	text := strings.Join(strings.Fields(layout), "")

	var out []Placement
	for _, section := range strings.Split(text, ";") {
		if section == "" {
			continue
		}
		name, data, ok := strings.Cut(section, ":")
		if !ok {
			return nil, &LayoutError{Entry: section, Reason: "missing ':' after colour"}
		}
		color, err := ParseColor(name)
		if err != nil {
			return nil, &LayoutError{Entry: section, Reason: err.Error()}
		}
		for _, group := range strings.Split(data, ",") {
			if group == "" {
				continue
			}
			placed, err := parseGroup(color, group)
			if err != nil {
				return nil, err
			}
			out = append(out, placed...)
		}
	}
	return out, nil
}

func parseGroup(c Color, group string) ([]Placement, error) {
	kind, ok := kindFromLayout(group[0])
	if !ok {
		return nil, &LayoutError{Entry: group, Reason: fmt.Sprintf("unknown piece letter %q", group[0])}
	}
	coords := group[1:]
	if coords == "" || len(coords)%2 != 0 {
		return nil, &LayoutError{Entry: group, Reason: "squares must be file/rank pairs"}
	}
	out := make([]Placement, 0, len(coords)/2)
	for i := 0; i < len(coords); i += 2 {
		sq, err := ParseSquare(coords[i : i+2])
		if err != nil {
			return nil, &LayoutError{Entry: group, Reason: err.Error()}
		}
		out = append(out, Placement{Color: c, Kind: kind, X: sq.X, Y: sq.Y})
	}
	return out, nil
}

// Replay loads a layout and plays the given moves, starting each turn in
// order. It fails on the first move that does not change the board.
func Replay(placements []Placement, moves []string) (*Board, error) {
	b := NewBoard()
	if err := b.Load(placements); err != nil {
		return nil, err
	}
	for i, s := range moves {
		if _, err := b.StartTurn(); err != nil {
			return b, fmt.Errorf("move %d %q: %w", i+1, s, err)
		}
		moved, err := b.ReadMove(s)
		if err != nil {
			return b, fmt.Errorf("move %d: %w", i+1, err)
		}
		if !moved {
			return b, fmt.Errorf("%w: move %d %q is not playable", ErrInvalidMove, i+1, s)
		}
	}
	return b, nil
}
