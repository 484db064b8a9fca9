package service

import (
	"testing"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/chess"
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameServicePlaysAGame(t *testing.T) {
	gs := NewGameService(NewGameManager(time.Minute))

	gameID, err := gs.CreateGame("")
	require.NoError(t, err)
	_, err = gs.CreateGame("8/8/8/8/8/8/8/8 w - - 0 1")
	assert.ErrorIs(t, err, chess.ErrInvalidFEN)

	color, err := gs.JoinGame(gameID, "alice")
	require.NoError(t, err)
	assert.Equal(t, chess.White, color)
	color, err = gs.JoinGame(gameID, "bob")
	require.NoError(t, err)
	assert.Equal(t, chess.Black, color)
	_, err = gs.JoinGame(gameID, "carol")
	assert.ErrorIs(t, err, model.ErrGameFull)

	moves, err := gs.LegalMoves(gameID, model.Position{X: 6, Y: 7})
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.Position{{X: 5, Y: 5}, {X: 7, Y: 5}}, moves.Quiet)

	ply, err := gs.HandleMove(gameID, "alice", model.WSMove{
		From: model.Position{X: 6, Y: 7},
		To:   model.Position{X: 5, Y: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, chess.Knight, ply.Piece.Type)

	status, err := gs.Status(gameID, chess.Black)
	require.NoError(t, err)
	assert.Equal(t, chess.Normal, status)

	state, err := gs.GetGameState(gameID)
	require.NoError(t, err)
	assert.Equal(t, chess.Black, state.ToMove)
	assert.Len(t, state.MoveHistory, 1)
	assert.Equal(t, []string{gameID}, gs.ListGames())
}
