package model

import (
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Conn is the part of a websocket connection the game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

// GameConnections holds the observers of a single game.
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (gc *GameConnections) add(playerID string, conn Conn) error {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	if _, exists := gc.connections[playerID]; exists {
		return ErrDuplicateConnection
	}
	gc.connections[playerID] = conn
	return nil
}

// remove drops playerID's connection if it is still conn. A nil conn
// removes whatever is registered.
func (gc *GameConnections) remove(playerID string, conn Conn) {
	gc.mu.Lock()
	defer gc.mu.Unlock()

	current, exists := gc.connections[playerID]
	if !exists {
		return
	}
	if conn != nil && current != conn {
		log.Debugf("ignoring unregister of stale connection for player %s", playerID)
		return
	}
	delete(gc.connections, playerID)
}

func (gc *GameConnections) Len() int {
	gc.mu.RLock()
	defer gc.mu.RUnlock()
	return len(gc.connections)
}

// broadcast sends msg to every observer. Connections that fail to accept the
// write are dropped.
func (gc *GameConnections) broadcast(msg ws.Message) {
	gc.mu.RLock()
	active := make(map[string]Conn, len(gc.connections))
	for playerID, conn := range gc.connections {
		active[playerID] = conn
	}
	gc.mu.RUnlock()

	for playerID, conn := range active {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warnf("failed to send %s to player %s: %v", msg.Type, playerID, err)
			gc.remove(playerID, conn)
			continue
		}
		log.Debugf("sent %s to player %s", msg.Type, playerID)
	}
}
