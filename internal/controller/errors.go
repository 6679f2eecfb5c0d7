package controller

import (
	"errors"

	"github.com/benbeisheim/fogchess-backend/internal/ai"
	"github.com/benbeisheim/fogchess-backend/internal/engine"
	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotInGame):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrInvalidMode),
		errors.Is(err, engine.ErrInvalidMove),
		errors.Is(err, engine.ErrInvalidCoordinate):
		return fiber.StatusBadRequest
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrGameExists),
		errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrNotYourPiece),
		errors.Is(err, model.ErrTurnNotStarted),
		errors.Is(err, model.ErrGameInProgress),
		errors.Is(err, model.ErrAlreadyQueued),
		errors.Is(err, engine.ErrGameEnded),
		errors.Is(err, engine.ErrTurnInProgress):
		return fiber.StatusConflict
	case errors.Is(err, ai.ErrEmptySearchSpace):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
