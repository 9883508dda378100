package turnplayer

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Greg1415/Connect4-bot/board"
	"github.com/Greg1415/Connect4-bot/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

const emptyRows = ".........\n.........\n.........\n.........\n.........\n.........\n.........\n"

// fakeChooser records the boards it is asked about.
type fakeChooser struct {
	col   int
	calls []board.Board
	err   error
}

func (f *fakeChooser) BestMove(b board.Board) (int, int8, error) {
	f.calls = append(f.calls, b)
	return f.col, 0, f.err
}

func turnText(index int, rows string, playable []string, opp string) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(index) + "\n")
	sb.WriteString(rows)
	sb.WriteString(strconv.Itoa(len(playable)) + "\n")
	for _, p := range playable {
		sb.WriteString(p + "\n")
	}
	sb.WriteString(opp + "\n")
	return sb.String()
}

var allColumns = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8"}

func TestReadTurn(t *testing.T) {
	rows := ".........\n.........\n.........\n.........\n.........\n.........\n...0.....\n"
	dec := NewDecoder(strings.NewReader("1 0\n" + turnText(1, rows, allColumns, "3")))

	seats, err := dec.ReadSeats()
	require.NoError(t, err)
	assert.Equal(t, Seats{Me: 1, Opponent: 0}, seats)

	turn, err := dec.ReadTurn()
	require.NoError(t, err)
	assert.Equal(t, 1, turn.Index)
	assert.Len(t, turn.Rows, board.NumRows)
	assert.Equal(t, "...0.....", turn.Rows[6])
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, turn.Playable)
	assert.Equal(t, 3, turn.OppPrevious)

	_, err = dec.ReadTurn()
	assert.Equal(t, io.EOF, err)
}

func TestReadTurnErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"bad-seats", "0 0\n", ErrMalformedInput},
		{"one-seat", "0\n", ErrMalformedInput},
		{"not-a-number", "0 1\nabc\n", ErrMalformedInput},
		{"short-board", "0 1\n0\n.........\n", io.ErrUnexpectedEOF},
		{"bad-playable", "0 1\n0\n" + emptyRows + "1\n9\n-1\n", ErrMalformedInput},
		{"bad-previous", "0 1\n0\n" + emptyRows + "0\n12\n", ErrMalformedInput},
		{"too-many-playable", "0 1\n0\n" + emptyRows + "10\n", ErrMalformedInput},
		{"missing-previous", "0 1\n0\n" + emptyRows + "0\n", io.ErrUnexpectedEOF},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dec := NewDecoder(strings.NewReader(tc.input))
			_, err := dec.ReadSeats()
			if err == nil {
				_, err = dec.ReadTurn()
			}
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestDecideOpening(t *testing.T) {
	fc := &fakeChooser{col: 7}
	p := NewTurnPlayer(Seats{Me: 0, Opponent: 1}, fc)
	a, err := p.Decide(&Turn{Index: 0, OppPrevious: -1})
	require.NoError(t, err)
	assert.Equal(t, "3", a.String())
	assert.Empty(t, fc.calls)
}

func TestDecideSteal(t *testing.T) {
	fc := &fakeChooser{col: 7}
	p := NewTurnPlayer(Seats{Me: 1, Opponent: 0}, fc)
	a, err := p.Decide(&Turn{Index: 1, OppPrevious: 4})
	require.NoError(t, err)
	assert.Equal(t, "STEAL", a.String())
	assert.Empty(t, fc.calls)
}

func TestDecideSearches(t *testing.T) {
	fc := &fakeChooser{col: 5}
	p := NewTurnPlayer(Seats{Me: 1, Opponent: 0}, fc)
	rows := strings.Split(strings.TrimSpace(emptyRows), "\n")
	rows[6] = "...0....."
	a, err := p.Decide(&Turn{Index: 1, Rows: rows, Playable: []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, OppPrevious: 3})
	require.NoError(t, err)
	assert.Equal(t, "5", a.String())
	require.Len(t, fc.calls, 1)
	assert.Equal(t, board.Theirs, fc.calls[0].Cell(0, 3))
	assert.Equal(t, 1, fc.calls[0].MovesPlayed())
}

func TestDecideErrors(t *testing.T) {
	fc := &fakeChooser{err: errors.New("boom")}
	p := NewTurnPlayer(Seats{Me: 0, Opponent: 1}, fc)
	rows := strings.Split(strings.TrimSpace(emptyRows), "\n")
	_, err := p.Decide(&Turn{Index: 2, Rows: rows})
	assert.EqualError(t, err, "boom")

	rows[0] = "....0...."
	_, err = p.Decide(&Turn{Index: 2, Rows: rows})
	assert.True(t, errors.Is(err, board.ErrFloatingPiece))
}

func TestLoop(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTTCapacity, 1<<12)
	cfg.Set(config.ConfigSearchHorizon, 2)

	// Player 0: turn 0 opens, turn 2 must block a horizontal threat at
	// column 3 on the bottom row.
	threat := ".........\n.........\n.........\n.........\n.........\n........0\n111...0.0\n"
	input := "0 1\n" +
		turnText(0, emptyRows, allColumns, "-1") +
		turnText(6, threat, allColumns, "2")

	var out bytes.Buffer
	require.NoError(t, Loop(cfg, strings.NewReader(input), &out))
	assert.Equal(t, "3\n3\n", out.String())
}

func TestLoopStealsAndFailsOnGarbage(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTTCapacity, 1<<12)
	cfg.Set(config.ConfigSearchHorizon, 1)

	opened := ".........\n.........\n.........\n.........\n.........\n.........\n....0....\n"
	input := "1 0\n" + turnText(1, opened, allColumns, "4") + "garbage\n"

	var out bytes.Buffer
	err := Loop(cfg, strings.NewReader(input), &out)
	assert.True(t, errors.Is(err, ErrMalformedInput))
	assert.Equal(t, "STEAL\n", out.String())
}

func TestLoopBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigSearchHorizon, -1)
	assert.Error(t, Loop(cfg, strings.NewReader(""), io.Discard))
}
