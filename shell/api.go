package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flipside/othello/automatic"
	"github.com/flipside/othello/board"
	"github.com/flipside/othello/config"
	"github.com/flipside/othello/equity"
	"github.com/flipside/othello/game"
	"github.com/flipside/othello/movegen"
	"github.com/flipside/othello/search/minimax"
)

const maxPerftDepth = 10

var errEngineBusy = errors.New("the engine is thinking; do `think stop` first")

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(usage("standard", sc.gitVersion)), nil
	}
	return msg(usageTopic(cmd.args[0])), nil
}

func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.optionsDisplayText()), nil
	}
	opt := cmd.args[0]
	if len(cmd.args) == 1 {
		_, val := sc.showOption(opt)
		return msg(val), nil
	}
	ret, err := sc.Set(opt, cmd.args[1:])
	if err != nil {
		return nil, err
	}
	return msg("set " + opt + " to " + ret), nil
}

func (sc *ShellController) newGame(cmd *shellcmd) (*Response, error) {
	if sc.mover.Thinking() {
		return nil, errEngineBusy
	}
	perPlayer := sc.config.GetDuration(config.ConfigTimePerPlayer)
	if t := cmd.options.String("time"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, err
		}
		perPlayer = d
	}
	if c := cmd.options.String("engine"); c != "" {
		color, err := parseColor(c)
		if err != nil {
			return nil, err
		}
		sc.options.engineColor = color
	}
	sc.mover.Take()
	sc.game = game.NewGame(perPlayer)
	sc.game.Start()
	if err := sc.engineReplies(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	sc.game.CheckFlag()
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	b := sc.game.Board()
	legal := movegen.LegalMoves(b)
	if legal.IsEmpty() {
		return msg("no legal moves"), nil
	}
	return msg(b.ToDisplayText(legal) + "\n" + b.Turn().String() + " can play: " + legal.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <square>, for example `play d3`")
	}
	if sc.mover.Thinking() {
		return nil, errEngineBusy
	}
	ply, err := board.ParsePly(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.PlayMove(ply); err != nil {
		return nil, err
	}
	if err := sc.engineReplies(); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) aiPlay(cmd *shellcmd) (*Response, error) {
	report, err := sc.enginePlay()
	if err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText() + "\n" + report), nil
}

// engineReplies lets the engine move for as long as it is on turn, which
// may be more than once when the other side has to pass.
func (sc *ShellController) engineReplies() error {
	for sc.options.engineColor != board.Empty && sc.game.Playing() &&
		sc.game.Board().Turn() == sc.options.engineColor {

		report, err := sc.enginePlay()
		if err != nil {
			return err
		}
		sc.showMessage(report)
	}
	return nil
}

// enginePlay has the engine pick and play a move for the side to move.
func (sc *ShellController) enginePlay() (string, error) {
	if !sc.game.Playing() {
		return "", errors.New("the game is over; start a `new` one")
	}
	if sc.mover.Thinking() {
		return "", errEngineBusy
	}
	// Drop a result left over from `think`.
	sc.mover.Take()
	b := sc.game.Board()
	if !sc.mover.Start(context.Background(), b, sc.game.TimeLeft(b.Turn())) {
		return "", errEngineBusy
	}
	ply, err := sc.mover.Wait(context.Background())
	if err != nil {
		return "", err
	}
	if err := sc.game.PlayMove(ply); err != nil {
		return "", err
	}
	return searchReport(sc.engine.LastResult()), nil
}

func searchReport(res minimax.Result) string {
	return fmt.Sprintf("engine plays %s (eval %s, depth %d, %v, %d nodes)",
		res.Response.Ply, res.Response.Eval, res.Depth,
		res.Elapsed.Round(time.Millisecond), res.Stats.Nodes)
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if sc.mover.Thinking() {
		return nil, errEngineBusy
	}
	n, err := cmd.options.IntDefault("n", 1)
	if err != nil {
		return nil, err
	}
	for range n {
		if err := sc.game.UnplayLastMove(); err != nil {
			return nil, err
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

// think analyzes the position in the background without playing.
func (sc *ShellController) think(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) > 0 {
		switch cmd.args[0] {
		case "stop":
			if !sc.mover.Thinking() {
				return nil, errors.New("the engine is not thinking")
			}
			sc.mover.Cancel()
			ply, err := sc.mover.Wait(context.Background())
			if err != nil {
				return msg("stopped"), nil
			}
			return msg("stopped; best so far is " + ply.String()), nil
		case "show":
			if sc.mover.Thinking() {
				return msg("still thinking..."), nil
			}
			ply, err := sc.mover.Wait(context.Background())
			if err != nil {
				return nil, err
			}
			res := sc.engine.LastResult()
			if res.Response.Ply != ply {
				return msg("best move: " + ply.String()), nil
			}
			return msg(strings.Replace(searchReport(res), "engine plays", "best move:", 1)), nil
		}
		return nil, errors.New("usage: think [stop|show] [-time 10s]")
	}
	b := sc.game.Board()
	if b.GameOver() {
		return nil, errors.New("the game is over")
	}
	timeLeft := sc.game.TimeLeft(b.Turn())
	if t := cmd.options.String("time"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, err
		}
		// Think spends about 2/empties of the time left on a move.
		timeLeft = d * time.Duration(max(1, b.Empties())) / 2
	}
	sc.mover.Take()
	if !sc.mover.Start(context.Background(), b, timeLeft) {
		return nil, errEngineBusy
	}
	return msg("thinking... use `think show` for the result"), nil
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	b := sc.game.Board()
	bd := equity.Heuristic{}.Breakdown(b)
	var sb strings.Builder
	if bd.Terminal {
		fmt.Fprintf(&sb, "game over, score %s\n", bd.Score)
		return msg(sb.String()), nil
	}
	fmt.Fprintf(&sb, "%-10s %6s %6s\n", "", "black", "white")
	fmt.Fprintf(&sb, "%-10s %6d %6d\n", "mobility", bd.MobilityBlack, bd.MobilityWhite)
	fmt.Fprintf(&sb, "%-10s %6d %6d\n", "safe", bd.SafeBlack, bd.SafeWhite)
	fmt.Fprintf(&sb, "%-10s %6d %6d\n", "x-squares", bd.XBlack, bd.XWhite)
	fmt.Fprintf(&sb, "%-10s %6d %6d\n", "discs", b.CountBlack(), b.CountWhite())
	fmt.Fprintf(&sb, "score: %s", bd.Score)
	return msg(sb.String()), nil
}

func (sc *ShellController) perft(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: perft <depth>")
	}
	depth, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if depth < 0 || depth > maxPerftDepth {
		return nil, fmt.Errorf("perft depth must be between 0 and %d", maxPerftDepth)
	}
	start := time.Now()
	n := movegen.Perft(sc.game.Board(), depth)
	elapsed := time.Since(start)
	log.Debug().Int("depth", depth).Uint64("leaves", n).Dur("elapsed", elapsed).Msg("perft")
	return msg(fmt.Sprintf("perft(%d) = %d (%v)", depth, n, elapsed.Round(time.Millisecond))), nil
}

func (sc *ShellController) autoplay(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 1 {
		switch cmd.args[0] {
		case "stop":
			if !automatic.Playing() || sc.autoplayCancel == nil {
				return nil, errors.New("no automatic games are running")
			}
			sc.autoplayCancel()
			sc.autoplayCancel = nil
			return msg("stopping automatic games"), nil
		case "status":
			return msg(fmt.Sprintf("games played: %d, playing: %v",
				automatic.CVCCounter.Value(), automatic.Playing())), nil
		}
	}
	kind1, kind2 := automatic.MinimaxPlayer, automatic.MinimaxPlayer
	if len(cmd.args) == 2 {
		kind1, kind2 = cmd.args[0], cmd.args[1]
	} else if len(cmd.args) != 0 {
		return nil, errors.New("usage: autoplay [player1 player2] [-games n] [-threads n] [-file path] | autoplay stop | autoplay status")
	}
	games, err := cmd.options.IntDefault("games", 100)
	if err != nil {
		return nil, err
	}
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigAutoplayThreads))
	if err != nil {
		return nil, err
	}
	outFile := cmd.options.String("file")
	if outFile == "" {
		outFile = sc.config.GetString(config.ConfigAutoplayOutput)
	}
	ctx, cancel := context.WithCancel(context.Background())
	err = automatic.StartCompVComp(ctx, sc.config, kind1, kind2, games, threads, outFile)
	if err != nil {
		cancel()
		return nil, err
	}
	sc.autoplayCancel = cancel
	return msg(fmt.Sprintf("playing %d games of %s vs %s, logging to %s",
		games, kind1, kind2, outFile)), nil
}

func (sc *ShellController) analyze(cmd *shellcmd) (*Response, error) {
	file := cmd.options.String("file")
	if file == "" && len(cmd.args) == 1 {
		file = cmd.args[0]
	}
	if file == "" {
		file = sc.config.GetString(config.ConfigAutoplayOutput)
	}
	summary, err := automatic.AnalyzeLogFile(file)
	if err != nil {
		return nil, err
	}
	var sb strings.Builder
	sb.WriteString(summary.String())
	if cmd.options.Bool("histogram") {
		sb.WriteString("\nDisc differential:\n")
		if err := summary.Histogram(&sb); err != nil {
			return nil, err
		}
	}
	if out := cmd.options.String("yaml"); out != "" {
		data, err := summary.YAML()
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return nil, err
		}
		fmt.Fprintf(&sb, "wrote summary to %s\n", out)
	}
	return msg(sb.String()), nil
}
