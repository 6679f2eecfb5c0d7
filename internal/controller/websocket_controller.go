package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/fogchess-backend/internal/model"
	"github.com/benbeisheim/fogchess-backend/internal/service"
	"github.com/benbeisheim/fogchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection serves /ws/game/:gameId for one player.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	conn := model.NewSyncConn(c)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warnf("register connection for %s in %s: %v", playerID, gameID, err)
		_ = conn.WriteJSON(ws.ErrorMessage(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read from %s: %v", playerID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse from %s: %v", playerID, err)
			continue
		}
		reply, err := wsc.handleMessage(gameID, playerID, msg)
		if err != nil {
			log.Debugf("handle %s from %s: %v", msg.Type, playerID, err)
			reply = ws.ErrorMessage(err)
		}
		if reply.Type == "" {
			continue
		}
		if err := conn.WriteJSON(reply); err != nil {
			log.Warnf("write to %s: %v", playerID, err)
			return
		}
	}
}

// handleMessage applies one client message. State changes reach the client
// through the game's broadcast, so most messages have no direct reply.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) (ws.Message, error) {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return ws.Message{}, err
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return ws.Message{}, err

	case ws.MessageTypeStartTurn:
		_, err := wsc.gameService.StartTurn(gameID, playerID)
		return ws.Message{}, err

	case ws.MessageTypeHint:
		hint, err := wsc.gameService.Hint(context.Background(), gameID, playerID)
		if err != nil {
			return ws.Message{}, err
		}
		return ws.NewMessage(ws.MessageTypeHint, hint)

	default:
		return ws.Message{}, fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// HandleMatchmaking serves /ws/matchmaking: it queues the player and pushes
// a matchFound message once an opponent is found.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID, _ := c.Locals("playerID").(string)
	conn := model.NewSyncConn(c)

	events := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, events); err != nil {
		_ = conn.WriteJSON(ws.ErrorMessage(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, events)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		_ = conn.WriteJSON(ws.ErrorMessage(err))
		return
	}

	// The read loop only watches for the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case event, ok := <-events:
		if !ok {
			log.Debugf("matchmaking channel for %s replaced", playerID)
			return
		}
		if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(event)}); err != nil {
			log.Warnf("send match to %s: %v", playerID, err)
		}
	case <-gone:
		wsc.gameService.LeaveMatchmaking(playerID)
	}
}
