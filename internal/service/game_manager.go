package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// GameManager owns every live game and the matchmaking queue.
type GameManager struct {
	games            map[string]*model.Game
	queue            *model.Queue
	matchingChannels map[string]chan string
	clock            time.Duration
	mu               sync.RWMutex
}

// NewGameManager returns a manager whose games give each side clock of
// thinking time. Call Run to start pairing queued players.
func NewGameManager(clock time.Duration) *GameManager {
	return &GameManager{
		games:            make(map[string]*model.Game),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
		clock:            clock,
	}
}

// Run pairs queued players every interval until ctx is cancelled.
func (gm *GameManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Infof("matchmaking started, pairing every %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Info("matchmaking stopped")
			return
		case <-ticker.C:
			for gm.matchOnce() {
			}
		}
	}
}

// matchOnce pairs the two longest-waiting players into a new game and
// notifies them. It reports whether a pair was made.
func (gm *GameManager) matchOnce() bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	queued1, queued2, ok := gm.queue.GetNextPair()
	if !ok {
		return false
	}
	player1, player2 := queued1.Player, queued2.Player

	gameID := uuid.New().String()
	game := model.NewGame(gameID, gm.clock)
	p1Color, err := game.AddPlayer(player1.ID)
	if err != nil {
		log.Errorf("failed to seat %s in game %s: %v", player1.ID, gameID, err)
		return false
	}
	p2Color, err := game.AddPlayer(player2.ID)
	if err != nil {
		log.Errorf("failed to seat %s in game %s: %v", player2.ID, gameID, err)
		return false
	}
	gm.games[gameID] = game
	log.Infof("matched %s and %s into game %s after waiting %s",
		player1.ID, player2.ID, gameID, time.Since(queued1.JoinedAt).Round(time.Millisecond))

	gm.notifyMatch(player1.ID, model.MatchFoundEvent{GameID: gameID, Color: p1Color})
	gm.notifyMatch(player2.ID, model.MatchFoundEvent{GameID: gameID, Color: p2Color})
	return true
}

// notifyMatch delivers event on the player's matchmaking channel and closes
// it. Players without a channel find the game by polling. Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		log.Debugf("no matchmaking channel for player %s", playerID)
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorf("failed to marshal match event: %v", err)
		return
	}
	delete(gm.matchingChannels, playerID)
	select {
	case ch <- string(payload):
		log.Debugf("sent match found event to player %s", playerID)
	default:
		log.Warnf("matchmaking channel of player %s is full", playerID)
	}
	close(ch)
}

// RegisterMatchmakingChannel sets where playerID's match event is delivered.
// A previously registered channel is closed.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		log.Debugf("replacing matchmaking channel for player %s", playerID)
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
}

// UnregisterMatchmakingChannel forgets playerID's channel without closing
// it; the registrant owns it.
func (gm *GameManager) UnregisterMatchmakingChannel(playerID string, ch chan string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if current, exists := gm.matchingChannels[playerID]; exists && current == ch {
		delete(gm.matchingChannels, playerID)
	}
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(model.Player{ID: playerID}); err != nil {
		return err
	}
	log.Infof("player %s joined matchmaking, %d waiting", playerID, gm.queue.Size())
	return nil
}

// LeaveMatchmaking removes playerID from the queue and reports whether it was
// waiting.
func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	return gm.queue.RemovePlayer(playerID)
}

// CreateGame registers a new game. An empty fen starts from the standard
// position.
func (gm *GameManager) CreateGame(gameID, fen string) error {
	var (
		game *model.Game
		err  error
	)
	if fen == "" {
		game = model.NewGame(gameID, gm.clock)
	} else if game, err = model.NewGameFromFEN(gameID, fen, gm.clock); err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%w: %s", ErrGameExists, gameID)
	}
	gm.games[gameID] = game
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

// ListGames returns the IDs of every game, sorted.
func (gm *GameManager) ListGames() []string {
	gm.mu.RLock()
	games := make(map[string]*model.Game, len(gm.games))
	maps.Copy(games, gm.games)
	gm.mu.RUnlock()

	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (gm *GameManager) AddPlayerToGame(gameID, playerID string) (chess.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return chess.White, err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) MakeMove(gameID, playerID string, move model.WSMove) (model.Ply, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.Ply{}, err
	}
	return game.MakeMove(playerID, move)
}

func (gm *GameManager) LegalMoves(gameID string, from model.Position) (model.LegalMoves, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.LegalMoves{}, err
	}
	return game.LegalMoves(from)
}

func (gm *GameManager) Status(gameID string, color chess.Color) (chess.Status, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return chess.Normal, err
	}
	return game.Status(color), nil
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}
