package shell

import (
	"testing"

	"github.com/matryer/is"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"analyze -file /path/to/log.txt",
			&shellcmd{"analyze", nil, CmdOptions{"file": {"/path/to/log.txt"}}},
			nil},
		{"autoplay stop",
			&shellcmd{"autoplay", []string{"stop"}, CmdOptions{}},
			nil},
		{"autoplay minimax random -games 20 -file foo.txt ",
			&shellcmd{"autoplay",
				[]string{"minimax", "random"},
				CmdOptions{"games": {"20"}, "file": {"foo.txt"}}},
			nil,
		},
		{`analyze -file "my games.txt"`,
			&shellcmd{"analyze", nil, CmdOptions{"file": {"my games.txt"}}},
			nil},
		{"set depth -1",
			&shellcmd{"set", []string{"depth", "-1"}, CmdOptions{}},
			nil},
		{"autoplay minimax random -file",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}
