package turnplayer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Greg1415/Connect4-bot/board"
)

var ErrMalformedInput = errors.New("malformed protocol input")

// Turn is everything the host sends for one decision.
type Turn struct {
	// Index starts at 0; the first player gets the even turns.
	Index int
	// Rows is the board, top row first.
	Rows []string
	// Playable lists the columns the host considers open.
	Playable []int
	// OppPrevious is the opponent's last column, or -1 if there is none.
	OppPrevious int
}

// Decoder reads the host protocol one line at a time.
type Decoder struct {
	sc   *bufio.Scanner
	line int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{sc: bufio.NewScanner(r)}
}

func (d *Decoder) next() (string, error) {
	if !d.sc.Scan() {
		if err := d.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	d.line++
	return strings.TrimSpace(d.sc.Text()), nil
}

// mustNext is next for lines in the middle of a message, where running out
// of input means the message was cut short.
func (d *Decoder) mustNext() (string, error) {
	s, err := d.next()
	if err == io.EOF {
		return "", fmt.Errorf("after line %d: %w", d.line, io.ErrUnexpectedEOF)
	}
	return s, err
}

func (d *Decoder) parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: line %d: %w", ErrMalformedInput, d.line, err)
	}
	return n, nil
}

func (d *Decoder) nextInt() (int, error) {
	s, err := d.mustNext()
	if err != nil {
		return 0, err
	}
	return d.parseInt(s)
}

func (d *Decoder) checkColumn(col int, allowNone bool) error {
	if (allowNone && col == -1) || (col >= 0 && col < board.NumCols) {
		return nil
	}
	return fmt.Errorf("%w: line %d: column %d out of range", ErrMalformedInput, d.line, col)
}

// ReadSeats reads the startup line: this player's index, then the
// opponent's.
func (d *Decoder) ReadSeats() (Seats, error) {
	s, err := d.mustNext()
	if err != nil {
		return Seats{}, err
	}
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Seats{}, fmt.Errorf("%w: line %d: want two player indexes, got %q",
			ErrMalformedInput, d.line, s)
	}
	me, err := d.parseInt(fields[0])
	if err != nil {
		return Seats{}, err
	}
	opp, err := d.parseInt(fields[1])
	if err != nil {
		return Seats{}, err
	}
	seats := Seats{Me: me, Opponent: opp}
	return seats, seats.validate()
}

// ReadTurn reads one turn. It returns io.EOF, unwrapped, when the input
// ends cleanly between turns.
func (d *Decoder) ReadTurn() (*Turn, error) {
	s, err := d.next()
	if err != nil {
		return nil, err
	}
	t := &Turn{}
	if t.Index, err = d.parseInt(s); err != nil {
		return nil, err
	}
	if t.Index < 0 {
		return nil, fmt.Errorf("%w: line %d: negative turn index", ErrMalformedInput, d.line)
	}

	t.Rows = make([]string, board.NumRows)
	for i := range t.Rows {
		if t.Rows[i], err = d.mustNext(); err != nil {
			return nil, err
		}
	}

	n, err := d.nextInt()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > board.NumCols {
		return nil, fmt.Errorf("%w: line %d: %d playable columns", ErrMalformedInput, d.line, n)
	}
	t.Playable = make([]int, n)
	for i := range t.Playable {
		if t.Playable[i], err = d.nextInt(); err != nil {
			return nil, err
		}
		if err = d.checkColumn(t.Playable[i], false); err != nil {
			return nil, err
		}
	}

	if t.OppPrevious, err = d.nextInt(); err != nil {
		return nil, err
	}
	if err = d.checkColumn(t.OppPrevious, true); err != nil {
		return nil, err
	}
	return t, nil
}
