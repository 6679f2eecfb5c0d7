package model

import "github.com/benbeisheim/fogchess-backend/internal/engine"

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// PlayerView is the game as one player is allowed to see it. Squares is nil
// while a hotseat game waits for the next side to take the board.
type PlayerView struct {
	GameID    string                                       `json:"gameId"`
	Mode      Mode                                         `json:"mode"`
	Color     engine.Color                                 `json:"color"`
	Turn      engine.Turn                                  `json:"turn"`
	Next      engine.Color                                 `json:"next"`
	Outcome   engine.Outcome                               `json:"outcome"`
	Hidden    bool                                         `json:"hidden"`
	Squares   *[engine.Size][engine.Size]engine.SquareView `json:"squares,omitempty"`
	Players   Players                                      `json:"players"`
	LastMove  string                                       `json:"lastMove,omitempty"`
	Remaining map[engine.Kind]int                          `json:"remaining"`
	Lost      map[engine.Kind]int                          `json:"lost"`
	Moves     int                                          `json:"moves"`
	History   []string                                     `json:"history,omitempty"`
}

// SquareAt returns what the player is shown on sq.
func (v PlayerView) SquareAt(sq engine.Square) (engine.SquareView, bool) {
	if v.Squares == nil || !sq.InBounds() {
		return engine.SquareView{}, false
	}
	return v.Squares[sq.Y][sq.X], true
}
