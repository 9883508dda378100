package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrRowCount      = errors.New("wrong number of board rows")
	ErrRowWidth      = errors.New("wrong board row width")
	ErrBadCell       = errors.New("unrecognized cell character")
	ErrFloatingPiece = errors.New("piece above an empty cell")
)

const (
	EmptyMarker   = '.'
	Player0Marker = '0'
	Player1Marker = '1'
)

// Cell is the content of one square, relative to the side to move.
type Cell uint8

const (
	Empty Cell = iota
	Mine
	Theirs
)

// MarkerFor returns the character the host protocol uses for a player's
// pieces.
func MarkerFor(player int) byte {
	if player == 0 {
		return Player0Marker
	}
	return Player1Marker
}

// FromRows decodes a board snapshot. rows holds NumRows strings, top row
// first, each NumCols characters of EmptyMarker, Player0Marker or
// Player1Marker. Pieces carrying moverMarker belong to the side to move.
// The ply count is taken from the number of pieces on the board.
func FromRows(rows []string, moverMarker byte) (Board, error) {
	if len(rows) != NumRows {
		return Board{}, fmt.Errorf("%w: got %d, want %d", ErrRowCount, len(rows), NumRows)
	}
	b := Board{}
	for i, line := range rows {
		line = strings.TrimSpace(line)
		if len(line) != NumCols {
			return Board{}, fmt.Errorf("%w: row %d is %q", ErrRowWidth, i, line)
		}
		row := NumRows - 1 - i
		for col := 0; col < NumCols; col++ {
			ch := line[col]
			switch ch {
			case EmptyMarker:
				continue
			case Player0Marker, Player1Marker:
			default:
				return Board{}, fmt.Errorf("%w: %q at row %d, column %d", ErrBadCell, ch, i, col)
			}
			bit := cellMask(row, col)
			b.occupied = b.occupied.Or(bit)
			if ch == moverMarker {
				b.mover = b.mover.Or(bit)
			}
			b.plies++
		}
	}
	for col := 0; col < NumCols; col++ {
		// A gravity-respecting column is a solid run from row 0, so adding
		// one to it yields a single bit.
		stack := b.occupied.And(columnMask(col)).Rsh(uint(col * ColumnStride))
		if stack.Add64(1).OnesCount() != 1 {
			return Board{}, fmt.Errorf("%w: column %d", ErrFloatingPiece, col)
		}
	}
	return b, nil
}

// Cell returns what occupies the square at row (0 is the bottom) and col.
func (b Board) Cell(row, col int) Cell {
	bit := cellMask(row, col)
	switch {
	case b.occupied.And(bit).IsZero():
		return Empty
	case b.mover.And(bit).IsZero():
		return Theirs
	default:
		return Mine
	}
}

// LegalColumns returns the playable columns of b, in the given order.
func (b Board) LegalColumns(order []int) []int {
	return lo.Filter(order, func(col int, _ int) bool {
		return b.IsLegalMove(col)
	})
}

// Rows renders the board the way the host protocol sends it, top row
// first, with moverMarker for the side to move and the other player's
// marker for the opponent.
func (b Board) Rows(moverMarker byte) []string {
	other := byte(Player1Marker)
	if moverMarker == Player1Marker {
		other = Player0Marker
	}
	rows := make([]string, NumRows)
	for i := range rows {
		row := NumRows - 1 - i
		var sb strings.Builder
		for col := 0; col < NumCols; col++ {
			switch b.Cell(row, col) {
			case Empty:
				sb.WriteByte(EmptyMarker)
			case Mine:
				sb.WriteByte(moverMarker)
			case Theirs:
				sb.WriteByte(other)
			}
		}
		rows[i] = sb.String()
	}
	return rows
}

// String shows the side to move as X and the opponent as O.
func (b Board) String() string {
	var sb strings.Builder
	for row := NumRows - 1; row >= 0; row-- {
		sb.WriteString("|")
		for col := 0; col < NumCols; col++ {
			switch b.Cell(row, col) {
			case Empty:
				sb.WriteString(" .")
			case Mine:
				sb.WriteString(" X")
			case Theirs:
				sb.WriteString(" O")
			}
		}
		sb.WriteString(" |\n")
	}
	sb.WriteString("+")
	sb.WriteString(strings.Repeat("--", NumCols))
	sb.WriteString("-+\n ")
	for col := 0; col < NumCols; col++ {
		fmt.Fprintf(&sb, " %d", col)
	}
	fmt.Fprintf(&sb, "\nply %d, X to move\n", b.plies)
	return sb.String()
}
