// Package shell is the interactive front end: play against the engine,
// inspect positions and run self-play matches.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/flipside/othello/config"
	"github.com/flipside/othello/game"
	"github.com/flipside/othello/player"
)

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	config *config.Config

	gitVersion string

	options *ShellOptions
	game    *game.Game
	engine  *player.MinimaxPlayer
	mover   *player.AsyncMover
	logFile *os.File

	autoplayCancel context.CancelFunc
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config, gitVersion string) *ShellController {
	sc := newController(cfg, nil)
	sc.gitVersion = gitVersion
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mothello>\033[0m ",
		HistoryFile:     "/tmp/othello_readline.tmp",
		AutoComplete:    NewShellCompleter(sc),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stderr()
	return sc
}

// newController builds a controller without a terminal; messages go to out.
func newController(cfg *config.Config, out io.Writer) *ShellController {
	sc := &ShellController{
		out:     out,
		config:  cfg,
		options: defaultShellOptions(),
	}
	if err := sc.buildEngine(); err != nil {
		// The config was validated when it was loaded; fall back to the
		// defaults rather than run without an engine.
		log.Err(err).Msg("bad-engine-config")
		sc.config = config.DefaultConfig()
		if err := sc.buildEngine(); err != nil {
			panic(err)
		}
	}
	sc.game = game.NewGame(sc.config.GetDuration(config.ConfigTimePerPlayer))
	return sc
}

// buildEngine replaces the engine with one built from the current settings.
func (sc *ShellController) buildEngine() error {
	if sc.mover != nil && sc.mover.Thinking() {
		return errors.New("the engine is thinking; do `think stop` first")
	}
	engine, err := player.NewMinimaxPlayer("engine", sc.config)
	if err != nil {
		return err
	}
	engine.Solver().SetPruning(sc.options.pruning)
	if sc.logFile != nil {
		sc.logFile.Close()
		sc.logFile = nil
	}
	if sc.options.logfile != "" {
		f, err := os.Create(sc.options.logfile)
		if err != nil {
			return err
		}
		sc.logFile = f
		engine.Solver().SetLogStream(f)
	}
	sc.engine = engine
	sc.mover = player.NewAsyncMover(engine)
	return nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// Execute runs one command line, showing its output.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	resp, err := sc.standardModeSwitch(line, sig)
	if err != nil {
		sc.showError(err)
		return
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		if errors.Is(err, errNoData) {
			return nil, nil
		}
		return nil, err
	}
	switch cmd.cmd {
	case "exit", "bye":
		sig <- syscall.SIGINT
		return nil, errors.New("sending quit signal")
	case "help":
		return sc.help(cmd)
	case "new":
		return sc.newGame(cmd)
	case "s", "show":
		return sc.show(cmd)
	case "moves":
		return sc.moves(cmd)
	case "play":
		return sc.play(cmd)
	case "ai":
		return sc.aiPlay(cmd)
	case "undo":
		return sc.undo(cmd)
	case "think":
		return sc.think(cmd)
	case "eval":
		return sc.eval(cmd)
	case "perft":
		return sc.perft(cmd)
	case "set":
		return sc.set(cmd)
	case "autoplay":
		return sc.autoplay(cmd)
	case "analyze":
		return sc.analyze(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unrecognized command: %s", cmd.cmd)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		sc.Execute(sig, line)
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Cleanup stops background work before the program exits.
func (sc *ShellController) Cleanup() {
	if sc.mover != nil {
		sc.mover.Cancel()
	}
	if sc.autoplayCancel != nil {
		sc.autoplayCancel()
	}
	if sc.logFile != nil {
		sc.logFile.Close()
	}
}
