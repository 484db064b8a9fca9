package chess

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sq parses an algebraic square name such as "e2".
func sq(name string) Square {
	return Square{Row: BoardSize - int(name[1]-'0'), Col: int(name[0] - 'a')}
}

func mustBoard(t *testing.T, fen string) *Board {
	t.Helper()
	b, _, err := ParseFEN(fen)
	require.NoError(t, err)
	require.NoError(t, b.Validate())
	return b
}

func mustPieceAt(t *testing.T, b *Board, name string) PieceID {
	t.Helper()
	id, err := b.PieceAt(sq(name))
	require.NoError(t, err, "no piece on %s\n%s", name, b)
	return id
}

func cloneBoard(b *Board) *Board {
	c := *b
	c.pieces = append([]Piece(nil), b.pieces...)
	return &c
}

func squareNames(squares []Square) []string {
	names := make([]string, 0, len(squares))
	for _, s := range squares {
		names = append(names, s.String())
	}
	return names
}
