package model

import (
	"fmt"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
)

// WSMove is a move request from a client. Notation, when set, takes
// precedence over the From/To squares and uses the algebraic form "e2e4".
type WSMove struct {
	From     engine.Square `json:"from"`
	To       engine.Square `json:"to"`
	Notation string        `json:"notation,omitempty"`
}

func (m WSMove) Move() (engine.Move, error) {
	if m.Notation != "" {
		return engine.ParseMove(m.Notation)
	}
	if !m.From.InBounds() || !m.To.InBounds() {
		return engine.Move{}, fmt.Errorf("%w: %v to %v", engine.ErrInvalidCoordinate, m.From, m.To)
	}
	return engine.NewMove(m.From, m.To), nil
}

// Hint is a suggested line for the requesting player.
type Hint struct {
	Move  string   `json:"move"`
	Line  []string `json:"line"`
	Score int      `json:"score"`
}

func newHint(line []engine.Move, score int) Hint {
	h := Hint{Score: score, Line: make([]string, len(line))}
	for i, m := range line {
		h.Line[i] = m.String()
	}
	if len(h.Line) > 0 {
		h.Move = h.Line[0]
	}
	return h
}
