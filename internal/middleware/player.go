package middleware

import (
	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const maxPlayerIDLen = 64

// EnsurePlayerID stores the caller's player ID in c.Locals("playerID"). It
// is read from the X-Player-ID header or the playerId query parameter. The
// computer's ID is reserved.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := c.Get("X-Player-ID")
		if playerID == "" {
			playerID = c.Query("playerId")
		}
		if playerID == "" {
			log.Debugf("rejecting %s %s without player ID", c.Method(), c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		if playerID == model.BotID || len(playerID) > maxPlayerIDLen {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid player ID",
			})
		}

		c.Locals("playerID", playerID)
		return c.Next()
	}
}
