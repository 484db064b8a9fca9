package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/middleware"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
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

// lockedConn serializes writes to a websocket shared by the read loop and
// game broadcasts.
type lockedConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (lc *lockedConn) WriteJSON(v interface{}) error {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.conn.WriteJSON(v)
}

func (lc *lockedConn) close(code int, text string) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	if err := lc.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, text)); err != nil {
		log.Debugf("failed to send close message: %v", err)
	}
}

func playerIDOf(c *websocket.Conn) string {
	id, _ := c.Locals(middleware.PlayerIDKey).(string)
	return id
}

// HandleConnection serves one observer of a game until the socket closes.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := playerIDOf(c)
	conn := &lockedConn{conn: c}

	if err := wsc.gameService.RegisterConnection(gameID, playerID, conn); err != nil {
		log.Warnf("failed to register connection of %s to game %s: %v", playerID, gameID, err)
		wsc.sendError(conn, err)
		code := websocket.ClosePolicyViolation
		if errors.Is(err, service.ErrGameNotFound) {
			code = websocket.CloseNormalClosure
		}
		conn.close(code, err.Error())
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, conn)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnf("read error from %s in game %s: %v", playerID, gameID, err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debugf("parse error: %v", err)
			wsc.sendError(conn, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(conn, gameID, playerID, msg); err != nil {
			log.Debugf("rejected %s from %s in game %s: %v", msg.Type, playerID, gameID, err)
			wsc.sendError(conn, err)
		}
	}
}

func (wsc *WebSocketController) handleMessage(conn *lockedConn, gameID, playerID string, msg ws.Message) (err error) {
	// websocket handlers run outside fiber's recover middleware
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("panic handling %s in game %s: %v", msg.Type, gameID, r)
			err = fmt.Errorf("internal error handling %s", msg.Type)
		}
	}()

	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		// the new state reaches every observer through the game's broadcast
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeLegalMoves:
		var req ws.LegalMovesRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		moves, err := wsc.gameService.LegalMoves(gameID, model.Position{X: req.From.X, Y: req.From.Y})
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeLegalMoves, moves)
		if err != nil {
			return err
		}
		return conn.WriteJSON(reply)

	case ws.MessageTypeGameState:
		state, err := wsc.gameService.GetGameState(gameID)
		if err != nil {
			return err
		}
		reply, err := ws.NewMessage(ws.MessageTypeGameState, state)
		if err != nil {
			return err
		}
		return conn.WriteJSON(reply)
	}
	return fmt.Errorf("unknown message type: %s", msg.Type)
}

func (wsc *WebSocketController) sendError(conn model.Conn, err error) {
	msg, marshalErr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if marshalErr != nil {
		log.Errorf("failed to marshal error message: %v", marshalErr)
		return
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Debugf("failed to send error message: %v", err)
	}
}

// HandleMatchmaking queues the player and holds the socket open until a match
// is found, then sends a matchFound message. Closing the socket leaves the
// queue.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := playerIDOf(c)
	conn := &lockedConn{conn: c}

	ch := make(chan string, 1)
	wsc.gameService.RegisterMatchmakingChannel(playerID, ch)
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID, ch)

	if err := wsc.gameService.JoinMatchmaking(playerID); err != nil && !errors.Is(err, model.ErrAlreadyQueued) {
		wsc.sendError(conn, err)
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case payload, ok := <-ch:
		if !ok {
			log.Debugf("matchmaking socket of %s replaced", playerID)
			return
		}
		if err := conn.WriteJSON(ws.Message{Type: ws.MessageTypeMatchFound, Payload: json.RawMessage(payload)}); err != nil {
			log.Warnf("failed to send match to %s: %v", playerID, err)
		}
	case <-closed:
		wsc.gameService.LeaveMatchmaking(playerID)
		log.Infof("player %s left matchmaking", playerID)
	}
}
