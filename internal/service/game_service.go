package service

import (
	"context"
	"fmt"

	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame(mode model.Mode) (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, mode); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (engine.Color, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) GetView(gameID string, playerID string) (model.PlayerView, error) {
	return gs.gameManager.GetView(gameID, playerID)
}

func (gs *GameService) GetHistory(gameID string) ([]string, engine.Outcome, error) {
	return gs.gameManager.GetHistory(gameID)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (bool, error) {
	return gs.gameManager.MakeMove(gameID, playerID, move)
}

func (gs *GameService) StartTurn(gameID string, playerID string) (engine.Color, error) {
	return gs.gameManager.StartTurn(gameID, playerID)
}

func (gs *GameService) Hint(ctx context.Context, gameID string, playerID string) (model.Hint, error) {
	return gs.gameManager.Hint(ctx, gameID, playerID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID, ch)
}
