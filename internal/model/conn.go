package model

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Conn is the part of a websocket connection a game writes to.
// *websocket.Conn satisfies it.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// SyncConn serializes writes to a connection shared by the read loop and
// game broadcasts.
type SyncConn struct {
	mu   sync.Mutex
	conn Conn
}

func NewSyncConn(conn Conn) *SyncConn {
	return &SyncConn{conn: conn}
}

func (s *SyncConn) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}

func (s *SyncConn) WriteMessage(messageType int, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(messageType, data)
}

func (s *SyncConn) Close() error {
	return s.conn.Close()
}

// closeWith sends a close frame with reason before closing.
func closeWith(conn Conn, reason string) {
	_ = conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
	)
	_ = conn.Close()
}

// GameConnections holds the live connection of each seated player.
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (gc *GameConnections) snapshot() map[string]Conn {
	gc.mu.RLock()
	defer gc.mu.RUnlock()

	active := make(map[string]Conn, len(gc.connections))
	for id, conn := range gc.connections {
		active[id] = conn
	}
	return active
}

func (gc *GameConnections) has(playerID string) bool {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	_, ok := gc.connections[playerID]
	return ok
}

// remove deletes playerID's connection if it is still conn.
func (gc *GameConnections) remove(playerID string, conn Conn) bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if current, ok := gc.connections[playerID]; ok && current == conn {
		delete(gc.connections, playerID)
		return true
	}
	return false
}
