package model

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

// Game is a single multiplayer session around one rules engine. The mutex
// serializes every engine call, including the simulate/rollback inside the
// legality checks.
type Game struct {
	ID          string
	mu          sync.Mutex
	engine      *chess.Game
	players     Players
	history     []Move
	captured    CapturedPieces
	sound       string
	connections *GameConnections // Connections just for this game
	whiteClock  *Clock
	blackClock  *Clock
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          *BoardState    `json:"boardState"`
	ToMove         chess.Color    `json:"toMove"`
	MoveHistory    []Move         `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	Status         chess.Status   `json:"status"`
	Resolve        *string        `json:"resolve"` // checkmate or stalemate once the game is over
	Winner         *chess.Color   `json:"winner"`
	Players        Players        `json:"players"`
	LastMove       *SimpleMove    `json:"lastMove"`
}

// CapturedPieces lists the pieces each side has taken.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame(id string, clock time.Duration) *Game {
	return newGame(id, chess.NewGame(), clock)
}

// NewGameFromFEN opens a session on an arbitrary position.
func NewGameFromFEN(id, fen string, clock time.Duration) (*Game, error) {
	engine, err := chess.NewGameFromFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(id, engine, clock), nil
}

func newGame(id string, engine *chess.Game, clock time.Duration) *Game {
	return &Game{
		ID:     id,
		engine: engine,
		players: Players{
			White: ClientPlayer{Color: chess.White},
			Black: ClientPlayer{Color: chess.Black},
		},
		history: make([]Move, 0),
		captured: CapturedPieces{
			White: make([]Piece, 0),
			Black: make([]Piece, 0),
		},
		connections: NewGameConnections(),
		whiteClock:  NewClock(clock),
		blackClock:  NewClock(clock),
	}
}

// AddPlayer seats playerID on the first free side. A player already seated
// gets their existing color back.
func (g *Game) AddPlayer(playerID string) (chess.Color, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if color, ok := g.players.colorOf(playerID); ok {
		return color, nil
	}
	for _, color := range []chess.Color{chess.White, chess.Black} {
		seat := g.players.seat(color)
		if seat.ID == "" {
			seat.ID = playerID
			log.Infof("player %s joined game %s as %s", playerID, g.ID, color)
			return color, nil
		}
	}
	return chess.White, ErrGameFull
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.players.colorOf(playerID)
	return ok
}

// CanSpectate reports whether a seat is still open.
func (g *Game) CanSpectate() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.canSpectate()
}

func (g *Game) canSpectate() bool {
	return g.players.White.ID == "" || g.players.Black.ID == ""
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

// Status classifies the current position for color.
func (g *Game) Status(color chess.Color) chess.Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.engine.StatusAfter(color)
}

// LegalMoves returns where the piece on from may legally go.
func (g *Game) LegalMoves(from Position) (LegalMoves, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.engine.PieceAt(from.square())
	if err != nil {
		return LegalMoves{}, err
	}
	ms, err := g.engine.LegalDestinations(id)
	if err != nil {
		return LegalMoves{}, err
	}
	return LegalMoves{
		From:    from,
		Quiet:   positionsOf(ms.QuietSquares()),
		Capture: positionsOf(ms.CaptureSquares()),
	}, nil
}

// MakeMove plays a move for the player seated on the moving piece's side and
// pushes the new state to every observer.
func (g *Game) MakeMove(playerID string, move WSMove) (Ply, error) {
	ply, state, err := g.applyMove(playerID, move)
	if err != nil {
		return Ply{}, err
	}
	g.broadcastState(state)
	return ply, nil
}

func (g *Game) applyMove(playerID string, move WSMove) (Ply, GameState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	log.Debugf("making move %v in game %s", move, g.ID)

	ply, err := g.executeMove(playerID, move)
	if err != nil {
		return Ply{}, GameState{}, err
	}
	return ply, g.snapshot(), nil
}

func (g *Game) executeMove(playerID string, move WSMove) (Ply, error) {
	color, ok := g.players.colorOf(playerID)
	if !ok {
		return Ply{}, ErrPlayerNotInGame
	}
	id, err := g.engine.PieceAt(move.From.square())
	if err != nil {
		return Ply{}, err
	}
	piece, err := g.engine.Piece(id)
	if err != nil {
		return Ply{}, err
	}
	if piece.Color != color {
		return Ply{}, ErrNotYourPiece
	}

	applied, err := g.engine.AttemptMove(id, move.To.square())
	if err != nil {
		return Ply{}, err
	}

	moved, _ := g.engine.Piece(id)
	ply := Ply{
		Piece: pieceView(id, moved),
		From:  positionOf(applied.From),
		To:    positionOf(applied.To),
	}
	g.sound = "move"
	if applied.IsCapture() {
		capturedPiece, _ := g.engine.Piece(applied.Captured)
		view := pieceView(applied.Captured, capturedPiece)
		ply.CapturedPiece = &view
		if applied.Color == chess.White {
			g.captured.White = append(g.captured.White, view)
		} else {
			g.captured.Black = append(g.captured.Black, view)
		}
		g.sound = "capture"
	}

	if applied.Color == chess.White {
		g.history = append(g.history, Move{WhitePly: &ply})
	} else if n := len(g.history); n > 0 && g.history[n-1].BlackPly == nil {
		g.history[n-1].BlackPly = &ply
	} else {
		// black moved first, e.g. from a FEN position
		g.history = append(g.history, Move{BlackPly: &ply})
	}

	g.switchClocks(applied.Color)

	state := g.engine.State()
	switch state.Status {
	case chess.Check:
		g.sound = "check"
	case chess.Checkmate, chess.Stalemate:
		g.sound = "gameOver"
		log.Infof("game %s over: %s", g.ID, state.Status)
	}
	return ply, nil
}

// switchClocks stops the mover's clock and starts the opponent's unless the
// game has ended.
func (g *Game) switchClocks(mover chess.Color) {
	moverClock, otherClock := g.whiteClock, g.blackClock
	if mover == chess.Black {
		moverClock, otherClock = g.blackClock, g.whiteClock
	}
	moverClock.Stop()
	if !g.engine.State().Over {
		otherClock.Start()
	}
}

func (g *Game) snapshot() GameState {
	engineState := g.engine.State()
	state := GameState{
		Sound:       g.sound,
		Board:       newBoardState(g.engine),
		ToMove:      engineState.Turn,
		MoveHistory: append([]Move(nil), g.history...),
		CapturedPieces: CapturedPieces{
			White: append([]Piece{}, g.captured.White...),
			Black: append([]Piece{}, g.captured.Black...),
		},
		IsCheck: engineState.Status == chess.Check || engineState.Status == chess.Checkmate,
		Status:  engineState.Status,
		Winner:  engineState.Winner,
		Players: g.players,
	}
	if state.MoveHistory == nil {
		state.MoveHistory = []Move{}
	}
	if engineState.Over {
		resolve := engineState.Status.String()
		state.Resolve = &resolve
	}
	if lm := engineState.LastMove; lm != nil {
		state.LastMove = &SimpleMove{From: positionOf(lm.From), To: positionOf(lm.To)}
	}
	state.Players.White.TimeLeft = g.whiteClock.tenths()
	state.Players.Black.TimeLeft = g.blackClock.tenths()
	return state
}

// RegisterConnection adds conn as an observer and sends everyone the current
// state. Seated players and anyone while a seat is open may observe.
func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	isAuthorized, state := g.authorize(playerID)

	if !isAuthorized {
		return ErrNotAuthorized
	}
	if err := g.connections.add(playerID, conn); err != nil {
		return err
	}
	log.Infof("registered connection for player %s in game %s", playerID, g.ID)

	g.broadcastState(state)
	return nil
}

func (g *Game) authorize(playerID string) (bool, GameState) {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, seated := g.players.colorOf(playerID)
	return seated || g.canSpectate(), g.snapshot()
}

func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.remove(playerID, conn)
}

func (g *Game) broadcastState(state GameState) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, state)
	if err != nil {
		log.Errorf("failed to marshal state of game %s: %v", g.ID, err)
		return
	}
	g.connections.broadcast(msg)
}

func (g *Game) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("game %s\n%s", g.ID, g.engine)
}
