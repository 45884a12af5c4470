package shell

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/config"
	"github.com/flipside/othello/equity"
	"github.com/flipside/othello/search/minimax"
)

var errUnknownOption = errors.New("unknown option")

// ShellOptions are the settings changed with the set command. Engine
// settings live in the config so that new engines pick them up.
type ShellOptions struct {
	// engineColor is the side the engine answers for; Empty turns the
	// automatic replies off.
	engineColor board.Color
	pruning     bool
	logfile     string
}

func defaultShellOptions() *ShellOptions {
	return &ShellOptions{engineColor: board.White, pruning: true}
}

var optionNames = []string{"engine", "evaluator", "depth", "time", "replacement", "pruning", "log"}

func parseColor(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "black", "b", "x":
		return board.Black, nil
	case "white", "w", "o":
		return board.White, nil
	case "none", "off":
		return board.Empty, nil
	}
	return board.Empty, fmt.Errorf("%q is not a color; use black, white or none", s)
}

// showOption returns whether opt exists and its current value.
func (sc *ShellController) showOption(opt string) (bool, string) {
	switch opt {
	case "engine":
		if sc.options.engineColor == board.Empty {
			return true, "none"
		}
		return true, sc.options.engineColor.String()
	case "evaluator":
		return true, sc.config.GetString(config.ConfigEvaluator)
	case "depth":
		return true, strconv.Itoa(sc.config.GetInt(config.ConfigMaxDepth))
	case "time":
		return true, sc.config.GetDuration(config.ConfigTimePerPlayer).String()
	case "replacement":
		return true, sc.config.GetString(config.ConfigTTReplacement)
	case "pruning":
		return true, strconv.FormatBool(sc.options.pruning)
	case "log":
		if sc.options.logfile == "" {
			return true, "off"
		}
		return true, sc.options.logfile
	}
	return false, "No such option: " + opt
}

func (sc *ShellController) optionsDisplayText() string {
	var sb strings.Builder
	sb.WriteString("Settings:\n")
	for _, opt := range optionNames {
		_, val := sc.showOption(opt)
		fmt.Fprintf(&sb, "  %-12s %s\n", opt+":", val)
	}
	return sb.String()
}

// Set validates and applies a setting. Engine settings rebuild the engine.
func (sc *ShellController) Set(key string, args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.New("usage: set <option> <value>")
	}
	val := args[0]
	rebuild := true
	switch key {
	case "engine":
		c, err := parseColor(val)
		if err != nil {
			return "", err
		}
		sc.options.engineColor = c
		rebuild = false
	case "evaluator":
		if _, err := equity.NewEvaluator(val); err != nil {
			return "", err
		}
		sc.config.Set(config.ConfigEvaluator, val)
	case "depth":
		d, err := strconv.Atoi(val)
		if err != nil {
			return "", err
		}
		if d < 1 || d > minimax.DefaultMaxDepth {
			return "", fmt.Errorf("depth must be between 1 and %d", minimax.DefaultMaxDepth)
		}
		sc.config.Set(config.ConfigMaxDepth, d)
	case "time":
		d, err := time.ParseDuration(val)
		if err != nil {
			return "", err
		}
		if d <= 0 {
			return "", errors.New("time must be positive")
		}
		// Takes effect with the next new game.
		sc.config.Set(config.ConfigTimePerPlayer, d)
		rebuild = false
	case "replacement":
		if _, err := minimax.ParseReplacementPolicy(val); err != nil {
			return "", err
		}
		sc.config.Set(config.ConfigTTReplacement, val)
	case "pruning":
		p, err := strconv.ParseBool(val)
		if err != nil {
			return "", err
		}
		sc.options.pruning = p
	case "log":
		if val == "off" {
			val = ""
		}
		sc.options.logfile = val
	default:
		return "", fmt.Errorf("%w: %s", errUnknownOption, key)
	}
	if rebuild {
		if err := sc.buildEngine(); err != nil {
			return "", err
		}
	}
	_, shown := sc.showOption(key)
	return shown, nil
}
