package engine

import "fmt"

// Color is the side a piece, a tile memory slot or a turn belongs to.
type Color int

const (
	White Color = iota
	Black
)

// Colors lists both sides in roster order.
var Colors = [2]Color{White, Black}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Opposite returns the other side.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// Sign is the row direction pawns of this colour advance in. Row 0 is rank 8.
func (c Color) Sign() int {
	if c == White {
		return -1
	}
	return 1
}

// ParseColor accepts "white" or "black".
func ParseColor(s string) (Color, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return White, fmt.Errorf("unknown colour %q", s)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Turn is the board's turn indicator.
type Turn int

const (
	TurnWaiting Turn = iota
	TurnWhite
	TurnBlack
	TurnEnded
)

// TurnOf returns the active turn value for c.
func TurnOf(c Color) Turn {
	if c == Black {
		return TurnBlack
	}
	return TurnWhite
}

// Color reports which side is to move, if any.
func (t Turn) Color() (Color, bool) {
	switch t {
	case TurnWhite:
		return White, true
	case TurnBlack:
		return Black, true
	}
	return White, false
}

func (t Turn) String() string {
	switch t {
	case TurnWhite:
		return "white"
	case TurnBlack:
		return "black"
	case TurnEnded:
		return "ended"
	}
	return "waiting"
}

func (t Turn) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Turn) UnmarshalText(text []byte) error {
	for _, v := range [...]Turn{TurnWaiting, TurnWhite, TurnBlack, TurnEnded} {
		if v.String() == string(text) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown turn %q", text)
}

// Outcome is the result of the game.
type Outcome int

const (
	Ongoing Outcome = iota
	WhiteWins
	BlackWins
	Tie
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white"
	case BlackWins:
		return "black"
	case Tie:
		return "tie"
	}
	return "ongoing"
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *Outcome) UnmarshalText(text []byte) error {
	for _, v := range [...]Outcome{Ongoing, WhiteWins, BlackWins, Tie} {
		if v.String() == string(text) {
			*o = v
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", text)
}
