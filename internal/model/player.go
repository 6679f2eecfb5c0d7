package model

import "github.com/benbeisheim/fogchess-backend/internal/engine"

// BotID is the player ID the computer plays under.
const BotID = "computer"

type Player struct {
	ID string
}

type ClientPlayer struct {
	ID        string       `json:"name"`
	Color     engine.Color `json:"color"`
	TimeLeft  int          `json:"timeLeft"`
	Connected bool         `json:"connected"`
}

// MatchFoundEvent is pushed to a queued player once an opponent is found.
type MatchFoundEvent struct {
	GameID string       `json:"gameId"`
	Color  engine.Color `json:"color"`
}
