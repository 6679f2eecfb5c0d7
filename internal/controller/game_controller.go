package controller

import (
	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Mode string `json:"mode" query:"mode"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}
	if req.Mode == "" {
		req.Mode = c.Query("mode")
	}
	mode, err := model.ParseMode(req.Mode)
	if err != nil {
		return fail(c, err)
	}

	gameID, err := gc.gameService.CreateGame(mode)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"mode":    mode,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		log.Warnf("join %s by %s: %v", gameID, playerID, err)
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

// GetGameState returns the requesting player's view of the game.
func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	view, err := gc.gameService.GetView(gameID, playerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) GetHistory(c *fiber.Ctx) error {
	history, outcome, err := gc.gameService.GetHistory(c.Params("gameId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"history": history,
		"outcome": outcome,
	})
}

func (gc *GameController) Hint(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	hint, err := gc.gameService.Hint(c.UserContext(), c.Params("gameId"), playerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(hint)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "queued",
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if !gc.gameService.LeaveMatchmaking(playerID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "player not in queue",
		})
	}
	return c.JSON(fiber.Map{
		"status": "left",
	})
}
