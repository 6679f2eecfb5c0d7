package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/fogchess-backend/internal/testutil"
	"github.com/gofiber/fiber/v2"
)

func newApp() *fiber.App {
	app := fiber.New()
	app.Use(EnsurePlayerID())
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("playerID").(string))
	})
	app.Get("/ws", WebSocketUpgrade(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestEnsurePlayerID(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"header", "/whoami", "alice", fiber.StatusOK, "alice"},
		{"query", "/whoami?playerId=bob", "", fiber.StatusOK, "bob"},
		{"header wins", "/whoami?playerId=bob", "alice", fiber.StatusOK, "alice"},
		{"missing", "/whoami", "", fiber.StatusUnauthorized, ""},
		{"reserved", "/whoami", "computer", fiber.StatusBadRequest, ""},
		{"too long", "/whoami", strings.Repeat("x", 65), fiber.StatusBadRequest, ""},
	}
	app := newApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set("X-Player-ID", tt.header)
			}
			resp, err := app.Test(req)
			testutil.AssertNoError(t, err)
			testutil.AssertEqual(t, resp.StatusCode, tt.wantStatus)
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				testutil.AssertEqual(t, string(body), tt.wantBody)
			}
		})
	}
}

func TestWebSocketUpgrade_RequiresUpgrade(t *testing.T) {
	req := httptest.NewRequest("GET", "/ws?playerId=alice", nil)
	resp, err := newApp().Test(req)
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, resp.StatusCode, fiber.StatusUpgradeRequired)
}
