package model

import "errors"

var (
	ErrGameNotFound   = errors.New("game not found")
	ErrGameExists     = errors.New("game already exists")
	ErrGameFull       = errors.New("game is full")
	ErrNotInGame      = errors.New("player not in game")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrNotYourPiece   = errors.New("not your piece")
	ErrTurnNotStarted = errors.New("turn not started")
	ErrGameInProgress = errors.New("game still in progress")
	ErrInvalidMode    = errors.New("invalid game mode")
)
