package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateAt(t *testing.T, b *Board, square string) MoveSet {
	t.Helper()
	ms, err := b.GenerateMoves(mustPieceAt(t, b, square))
	require.NoError(t, err)
	return ms
}

func TestPawnMoves(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		pawn    string
		quiet   []string
		capture []string
	}{
		{
			name:  "white double step from start",
			fen:   "4k3/8/8/8/8/8/4P3/4K3 w - - 0 1",
			pawn:  "e2",
			quiet: []string{"e4", "e3"},
		},
		{
			name:  "black double step from start",
			fen:   "4k3/3p4/8/8/8/8/8/4K3 b - - 0 1",
			pawn:  "d7",
			quiet: []string{"d6", "d5"},
		},
		{
			name: "blocked intermediate square",
			fen:  "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1",
			pawn: "e2",
		},
		{
			name:  "blocked destination square",
			fen:   "4k3/8/8/8/4n3/8/4P3/4K3 w - - 0 1",
			pawn:  "e2",
			quiet: []string{"e3"},
		},
		{
			name:  "single step off the starting rank",
			fen:   "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1",
			pawn:  "e3",
			quiet: []string{"e4"},
		},
		{
			name:    "diagonal only onto enemy pieces",
			fen:     "4k3/8/8/8/8/3p1N2/4P3/4K3 w - - 0 1",
			pawn:    "e2",
			quiet:   []string{"e4", "e3"},
			capture: []string{"d3"},
		},
		{
			name:    "edge file",
			fen:     "4k3/8/8/8/8/1p6/P7/4K3 w - - 0 1",
			pawn:    "a2",
			quiet:   []string{"a4", "a3"},
			capture: []string{"b3"},
		},
		{
			name: "last rank has nowhere to go",
			fen:  "P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
			pawn: "a8",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)
			ms := generateAt(t, b, tc.pawn)
			assert.ElementsMatch(t, tc.quiet, squareNames(ms.QuietSquares()))
			assert.ElementsMatch(t, tc.capture, squareNames(ms.CaptureSquares()))
		})
	}
}

func TestSlidingMovesStopAtFirstOccupant(t *testing.T) {
	b := mustBoard(t, "k7/8/3P4/8/3R1p2/8/8/7K w - - 0 1")
	ms := generateAt(t, b, "d4")

	assert.ElementsMatch(t,
		[]string{"d5", "e4", "c4", "b4", "a4", "d3", "d2", "d1"},
		squareNames(ms.QuietSquares()))
	assert.ElementsMatch(t, []string{"f4"}, squareNames(ms.CaptureSquares()))
	assert.False(t, ms.Has(sq("d6")), "friendly piece is never a destination")
	assert.False(t, ms.Has(sq("g4")), "ray continues past a capture")
}

func TestBishopAndQueenMoves(t *testing.T) {
	b := mustBoard(t, "k7/8/5p2/8/3B4/8/1P6/7K w - - 0 1")
	ms := generateAt(t, b, "d4")
	assert.ElementsMatch(t,
		[]string{"e5", "c5", "b6", "a7", "c3", "e3", "f2", "g1"},
		squareNames(ms.QuietSquares()))
	assert.ElementsMatch(t, []string{"f6"}, squareNames(ms.CaptureSquares()))

	b = mustBoard(t, "k7/8/8/8/8/8/1P6/Q6K b - - 0 1")
	ms = generateAt(t, b, "a1")
	assert.ElementsMatch(t,
		[]string{"a2", "a3", "a4", "a5", "a6", "a7", "b1", "c1", "d1", "e1", "f1", "g1"},
		squareNames(ms.QuietSquares()))
	assert.ElementsMatch(t, []string{"a8"}, squareNames(ms.CaptureSquares()))
}

func TestSteppingMoves(t *testing.T) {
	b := mustBoard(t, "k7/8/8/8/8/1p6/2P5/N6K w - - 0 1")
	ms := generateAt(t, b, "a1")
	assert.Empty(t, ms.QuietSquares())
	assert.ElementsMatch(t, []string{"b3"}, squareNames(ms.CaptureSquares()))
	assert.False(t, ms.Has(sq("c2")))

	b = mustBoard(t, "k7/8/8/8/8/8/6pP/7K w - - 0 1")
	ms = generateAt(t, b, "h1")
	assert.ElementsMatch(t, []string{"g1"}, squareNames(ms.QuietSquares()))
	assert.ElementsMatch(t, []string{"g2"}, squareNames(ms.CaptureSquares()))

	b = NewBoard()
	ms = generateAt(t, b, "g1")
	assert.ElementsMatch(t, []string{"f3", "h3"}, squareNames(ms.QuietSquares()))
	assert.Empty(t, ms.CaptureSquares())
}

func TestGenerateMovesRejectsDeadPieces(t *testing.T) {
	b := NewBoard()
	id := mustPieceAt(t, b, "a2")
	b.pieces[id].Alive = false

	_, err := b.GenerateMoves(id)
	assert.ErrorIs(t, err, ErrDeadPiece)
	_, err = b.GenerateMoves(PieceID(99))
	assert.ErrorIs(t, err, ErrNoPieceAtSource)
}

// Every sliding ray must contain quiet squares up to the first occupant,
// which is a capture iff it is an enemy, and nothing beyond.
func TestSlidingRayProperty(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w - - 0 1",
	}
	for _, fen := range fens {
		b := mustBoard(t, fen)
		for i, p := range b.pieces {
			var dirs []offset
			switch p.Type {
			case Rook:
				dirs = straightDirs
			case Bishop:
				dirs = diagonalDirs
			case Queen:
				dirs = append(append([]offset{}, straightDirs...), diagonalDirs...)
			default:
				continue
			}
			ms, err := b.GenerateMoves(PieceID(i))
			require.NoError(t, err)
			for _, d := range dirs {
				blocked := false
				for s := p.Square.offset(d.dr, d.dc); s.Valid(); s = s.offset(d.dr, d.dc) {
					occ := b.occupant(s)
					switch {
					case blocked:
						assert.False(t, ms.Has(s), "%s: %s beyond blocker", fen, s)
					case occ == NoPiece:
						assert.True(t, ms.Quiet[s.Row][s.Col], "%s: %s should be quiet", fen, s)
					default:
						enemy := b.pieces[occ].Color != p.Color
						assert.Equal(t, enemy, ms.Capture[s.Row][s.Col], "%s: %s capture", fen, s)
						assert.False(t, ms.Quiet[s.Row][s.Col])
						blocked = true
					}
				}
			}
		}
	}
}
