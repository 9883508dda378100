package shell

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/Greg1415/Connect4-bot/board"
	"github.com/Greg1415/Connect4-bot/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func newTestController(t *testing.T) *ShellController {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTTCapacity, 1<<12)
	cfg.Set(config.ConfigSearchHorizon, 2)
	sc, err := NewShellController(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return sc
}

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"play 4 3 -1",
			&shellcmd{"play", []string{"4", "3", "-1"}, map[string]string{}},
			nil},
		{`load "........./........./........./........./........./........./....0...." 1`,
			&shellcmd{"load", []string{"........./........./........./........./........./........./....0....", "1"},
				map[string]string{}},
			nil},
		{"best -horizon 4",
			&shellcmd{"best", nil, map[string]string{"horizon": "4"}},
			nil},
		{"best -horizon", nil, errWrongOptionSyntax},
	}
	for _, tc := range cases {
		cmd, err := extractFields(tc.line)
		is.Equal(cmd, tc.expCmd)
		is.Equal(err, tc.expErr)
	}
}

func TestPlayUndoShow(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)

	_, err := sc.Execute("play 4 4 3")
	is.NoErr(err)
	is.Equal(sc.current().MovesPlayed(), 3)

	out, err := sc.Execute("show")
	is.NoErr(err)
	is.True(strings.HasSuffix(out, "moves: 4 4 3"))

	_, err = sc.Execute("undo")
	is.NoErr(err)
	is.Equal(sc.current().MovesPlayed(), 2)

	_, err = sc.Execute("play 9")
	is.True(err != nil)
	_, err = sc.Execute("play x")
	is.True(err != nil)

	_, err = sc.Execute("new")
	is.NoErr(err)
	_, err = sc.Execute("undo")
	is.True(err != nil)
}

func TestPlayUntilWin(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	out, err := sc.Execute("play 0 8 1 8 2 8 3")
	is.NoErr(err)
	is.True(strings.Contains(out, "column 3 wins the game"))
	_, err = sc.Execute("play 5")
	is.True(errors.Is(err, errGameOver))
	_, err = sc.Execute("undo")
	is.NoErr(err)
	_, err = sc.Execute("play 5")
	is.NoErr(err)
}

func TestLoadAndBest(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	_, err := sc.Execute(`load "........./........./........./........./........./........0/111...0.0" 0`)
	is.NoErr(err)
	is.Equal(sc.current().Cell(0, 0), board.Theirs)

	out, err := sc.Execute("best")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "best column 3,"))

	out, err = sc.Execute("eval")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "score "))

	out, err = sc.Execute("ttstats")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "capacity 4096,"))

	_, err = sc.Execute(`load "....0..../........./........./........./........./........./........."`)
	is.True(errors.Is(err, board.ErrFloatingPiece))
	_, err = sc.Execute(`load "........./........./........./........./........./........./........." 2`)
	is.True(err != nil)
}

func TestSet(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	out, err := sc.Execute("set horizon 5")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "horizon 5,"))
	_, err = sc.Execute("set order 0,1,2,3,4,5,6,7,8")
	is.NoErr(err)
	is.Equal(sc.solver.Params().ColumnOrder, []int{0, 1, 2, 3, 4, 5, 6, 7, 8})
	_, err = sc.Execute("set order 0,1")
	is.True(err != nil)
	_, err = sc.Execute("set depth 3")
	is.True(err != nil)
}

func TestUnknownAndQuit(t *testing.T) {
	is := is.New(t)
	sc := newTestController(t)
	_, err := sc.Execute("fly")
	is.True(err != nil)
	_, err = sc.Execute("exit")
	is.True(errors.Is(err, errQuit))
	out, err := sc.Execute("help")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "commands:"))
}
