package board

import (
	"fmt"

	"lukechampine.com/uint128"
)

// The grid is stored column by column. Column c owns bits c*ColumnStride
// through c*ColumnStride+7: rows 0 (bottom) to 6 (top), then one guard bit
// that never holds a piece. The guard keeps every shift used for win
// detection from carrying a piece into the neighbouring column.
//
//	 7 15 23 31 39 47 55 63 71   <- guard
//	 6 14 22 30 38 46 54 62 70
//	 5 13 21 29 37 45 53 61 69
//	 4 12 20 28 36 44 52 60 68
//	 3 11 19 27 35 43 51 59 67
//	 2 10 18 26 34 42 50 58 66
//	 1  9 17 25 33 41 49 57 65
//	 0  8 16 24 32 40 48 56 64
const (
	NumRows      = 7
	NumCols      = 9
	ColumnStride = NumRows + 1
	NumCells     = NumRows * NumCols
)

// Key is the canonical identity of a position, side to move included.
type Key = uint128.Uint128

var (
	// bottomGuardMask has the row 0 bit of every column set.
	bottomGuardMask = func() uint128.Uint128 {
		m := uint128.Zero
		for c := 0; c < NumCols; c++ {
			m = m.Or(bottomMask(c))
		}
		return m
	}()
)

func bottomMask(col int) uint128.Uint128 {
	return uint128.From64(1).Lsh(uint(col * ColumnStride))
}

func topMask(col int) uint128.Uint128 {
	return uint128.From64(1).Lsh(uint(col*ColumnStride + NumRows - 1))
}

func columnMask(col int) uint128.Uint128 {
	return uint128.From64(1<<NumRows - 1).Lsh(uint(col * ColumnStride))
}

func cellMask(row, col int) uint128.Uint128 {
	return uint128.From64(1).Lsh(uint(col*ColumnStride + row))
}

// Board is one position. It is a small value type: MakeMove returns a new
// Board and never changes the receiver.
type Board struct {
	// mover has a bit wherever the side to move has a piece.
	mover uint128.Uint128
	// occupied has a bit wherever anyone has a piece.
	occupied uint128.Uint128
	plies    int
}

// New returns the empty board.
func New() Board {
	return Board{}
}

// FromBits builds a board straight from its bit fields. The caller is
// responsible for handing in a reachable position.
func FromBits(mover, occupied uint128.Uint128, plies int) Board {
	return Board{mover: mover, occupied: occupied, plies: plies}
}

func validColumn(col int) bool {
	return col >= 0 && col < NumCols
}

// IsLegalMove reports whether col still has room for a piece.
func (b Board) IsLegalMove(col int) bool {
	if !validColumn(col) {
		return false
	}
	return b.occupied.And(topMask(col)).IsZero()
}

// MakeMove drops a piece for the side to move into col and returns the
// resulting position, with the other side to move. col must be legal.
func (b Board) MakeMove(col int) Board {
	if !b.IsLegalMove(col) {
		panic(fmt.Sprintf("board: illegal move in column %d", col))
	}
	// Adding the column's bottom bit carries up through the stack and
	// lands on the first empty cell.
	return Board{
		mover:    b.mover.Xor(b.occupied),
		occupied: b.occupied.Or(b.occupied.Add(bottomMask(col))),
		plies:    b.plies + 1,
	}
}

// MoveCausesWin reports whether dropping a piece into col gives the side to
// move four in a row. col must be legal.
func (b Board) MoveCausesWin(col int) bool {
	dropped := b.occupied.Add(bottomMask(col)).And(columnMask(col))
	return HasFourInARow(b.mover.Or(dropped))
}

// MovesPlayed is the number of pieces on the board.
func (b Board) MovesPlayed() int {
	return b.plies
}

// Key returns the canonical key of the position. Adding the bottom guard
// mask to the occupancy leaves exactly one marker bit per column, directly
// above its stack, and the mover's pieces all sit below those markers, so
// the XOR is unique per (occupancy, side to move) pair.
func (b Board) Key() Key {
	return b.mover.Xor(b.occupied.Add(bottomGuardMask))
}

// Mirror returns the same occupancy with the other side to move.
func (b Board) Mirror() Board {
	return Board{
		mover:    b.mover.Xor(b.occupied),
		occupied: b.occupied,
		plies:    b.plies,
	}
}

// Mover returns the bit field of the side to move.
func (b Board) Mover() uint128.Uint128 {
	return b.mover
}

// Occupied returns the bit field of every piece on the board.
func (b Board) Occupied() uint128.Uint128 {
	return b.occupied
}

// Height returns the number of pieces in col.
func (b Board) Height(col int) int {
	return b.occupied.And(columnMask(col)).OnesCount()
}

// IsFull reports whether no column can take another piece.
func (b Board) IsFull() bool {
	for c := 0; c < NumCols; c++ {
		if b.IsLegalMove(c) {
			return false
		}
	}
	return true
}

// HasFourInARow reports whether bits contain four consecutive set cells in
// any direction. Shifts only ever move bits toward lower columns; anything
// pushed into a guard slot is cleared by the final AND against bits, whose
// guards are always empty.
func HasFourInARow(bits uint128.Uint128) bool {
	for _, step := range [...]uint{
		ColumnStride,     // horizontal
		ColumnStride - 1, // diagonal, rising to the left
		ColumnStride + 1, // diagonal, rising to the right
		1,                // vertical
	} {
		pairs := bits.And(bits.Rsh(step))
		if !pairs.And(pairs.Rsh(2 * step)).IsZero() {
			return true
		}
	}
	return false
}
