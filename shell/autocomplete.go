package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/movegen"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string
	Args    []string
}

var commandMetadata = map[string]CommandMetadata{
	"new":      {Options: []string{"-time", "-engine"}},
	"undo":     {Options: []string{"-n"}},
	"think":    {Options: []string{"-time"}, Args: []string{"stop", "show"}},
	"set":      {Args: optionNames},
	"autoplay": {Options: []string{"-games", "-threads", "-file"}, Args: []string{"minimax", "random", "stop", "status"}},
	"analyze":  {Options: []string{"-file", "-histogram", "-yaml"}},
	"help":     {Args: []string{"play", "think", "set", "autoplay", "analyze"}},
}

var commandNames = []string{
	"help", "new", "s", "show", "moves", "play", "ai", "undo", "think",
	"eval", "perft", "set", "autoplay", "analyze", "exit",
}

var optionValues = map[string][]string{
	"engine":      {"black", "white", "none"},
	"evaluator":   {"heuristic", "discs"},
	"replacement": {"always", "deeper"},
	"pruning":     {"true", "false"},
	"histogram":   {"true", "false"},
}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		switch {
		case strings.HasPrefix(lastCompleteField, "-"):
			completions = optionValues[strings.TrimPrefix(lastCompleteField, "-")]
		case cmdName == "set" && lastCompleteField != "set":
			completions = optionValues[lastCompleteField]
		case cmdName == "play":
			// Offer the legal moves in the current position.
			completions = lo.Map(movegen.LegalMoves(c.sc.game.Board()).Slice(),
				func(p board.Ply, _ int) string { return p.String() })
		}

		if completions == nil {
			if metadata, exists := commandMetadata[cmdName]; exists {
				if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
					completions = metadata.Options
				} else {
					completions = metadata.Args
				}
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
