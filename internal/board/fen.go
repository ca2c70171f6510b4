package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// PlacementField returns the first field of a FEN string.
func PlacementField(fen string) string {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Load replaces the grid with the pieces described by the placement field of
// fen and returns how many were placed. It does not touch the position string.
//
// Parsing is tolerant: an empty field is a no-op, unknown characters are
// skipped and pieces that would fall off the grid are dropped.
func (b *Board) Load(fen string) int {
	placement := PlacementField(fen)
	if placement == "" {
		return 0
	}
	b.Clear()

	placed := 0
	rank, file := 8, 0
	for i := 0; i < len(placement); i++ {
		c := placement[i]
		switch {
		case c == '/':
			file = 0
			rank--
		case c >= '0' && c <= '9':
			file += int(c - '0')
		default:
			color, kind, ok := PieceFromSymbol(c)
			if !ok {
				continue
			}
			if file <= 7 && rank >= 1 {
				sq := NewSquare(file, rank)
				b.PlacePiece(sq, NewPiece(color, kind, sq))
				placed++
			}
			file++
		}
	}
	return placed
}

// Placement serializes the grid as a FEN placement field.
func (b *Board) Placement() string {
	return placementOf(&b.squares)
}

func placementOf(grid *[NumSquares]*Piece) string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for file := 0; file < 8; file++ {
			p := grid[row*8+file]
			if p == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.Symbol())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}
