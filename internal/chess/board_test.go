package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Validate())

	pieces := b.Pieces()
	assert.Len(t, pieces, 32)
	for _, p := range pieces {
		assert.True(t, p.Alive)
		assert.False(t, p.HasMoved)
	}

	assert.Equal(t, StartFEN, b.FEN(White))

	cases := []struct {
		square string
		color  Color
		typ    PieceType
	}{
		{"a1", White, Rook},
		{"b1", White, Knight},
		{"c1", White, Bishop},
		{"d1", White, Queen},
		{"e1", White, King},
		{"h2", White, Pawn},
		{"e8", Black, King},
		{"d8", Black, Queen},
		{"a7", Black, Pawn},
	}
	for _, tc := range cases {
		id := mustPieceAt(t, b, tc.square)
		p, err := b.Piece(id)
		require.NoError(t, err)
		assert.Equal(t, tc.color, p.Color, tc.square)
		assert.Equal(t, tc.typ, p.Type, tc.square)
		assert.Equal(t, sq(tc.square), p.Square)
	}
}

func TestPieceAtRejectsBadSquares(t *testing.T) {
	b := NewBoard()

	_, err := b.PieceAt(Square{Row: 8, Col: 0})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = b.PieceAt(Square{Row: 0, Col: -1})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = b.PieceAt(sq("e4"))
	assert.ErrorIs(t, err, ErrNoPieceAtSource)

	_, err = b.Piece(PieceID(32))
	assert.ErrorIs(t, err, ErrNoPieceAtSource)
	_, err = b.Piece(NoPiece)
	assert.ErrorIs(t, err, ErrNoPieceAtSource)
}

func TestValidateDetectsDesync(t *testing.T) {
	t.Run("cell points at captured piece", func(t *testing.T) {
		b := NewBoard()
		id := mustPieceAt(t, b, "a2")
		b.pieces[id].Alive = false
		assert.Error(t, b.Validate())
	})
	t.Run("piece moved without grid", func(t *testing.T) {
		b := NewBoard()
		id := mustPieceAt(t, b, "a2")
		b.pieces[id].Square = sq("a3")
		assert.Error(t, b.Validate())
	})
	t.Run("stray cell", func(t *testing.T) {
		b := NewBoard()
		b.grid[4][4] = mustPieceAt(t, b, "e2")
		assert.Error(t, b.Validate())
	})
}

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a8", Square{Row: 0, Col: 0}.String())
	assert.Equal(t, "e2", Square{Row: 6, Col: 4}.String())
	assert.Equal(t, "h1", Square{Row: 7, Col: 7}.String())
	assert.Equal(t, "(9,1)", Square{Row: 9, Col: 1}.String())
}

func TestBoardString(t *testing.T) {
	want := "8 r n b q k b n r\n" +
		"7 p p p p p p p p\n" +
		"6 . . . . . . . .\n" +
		"5 . . . . . . . .\n" +
		"4 . . . . . . . .\n" +
		"3 . . . . . . . .\n" +
		"2 P P P P P P P P\n" +
		"1 R N B Q K B N R\n" +
		"  a b c d e f g h\n"
	assert.Equal(t, want, NewBoard().String())
}

func TestParseFEN(t *testing.T) {
	b, turn, err := ParseFEN("4k3/8/8/8/8/8/4P3/4K3 b - - 0 1")
	require.NoError(t, err)
	assert.Equal(t, Black, turn)
	assert.Len(t, b.Pieces(), 3)
	assert.Equal(t, "4k3/8/8/8/8/8/4P3/4K3 b - - 0 1", b.FEN(Black))

	pawn, err := b.Piece(mustPieceAt(t, b, "e2"))
	require.NoError(t, err)
	assert.False(t, pawn.HasMoved)

	bad := []string{
		"",
		"8/8/8/8/8/8/8 w",
		"4k3/8/8/8/8/8/8/4K2 w",
		"4k3/8/8/8/8/8/8/4K4 w",
		"4k3/8/8/8/8/8/8/4X3 w",
		"8/8/8/8/8/8/8/4K3 w",
		"4k3/8/8/8/8/8/8/4K3 x",
		"4k2R/8/8/8/8/8/8/4K3 w",
		"4k3/8/8/8/8/8/8/r3K3 b",
	}
	for _, fen := range bad {
		_, _, err := ParseFEN(fen)
		assert.ErrorIs(t, err, ErrInvalidFEN, fen)
	}
}
