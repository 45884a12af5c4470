// Package automatic plays engine-vs-engine games and analyzes the logs
// they leave behind.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/config"
	"github.com/flipside/othello/game"
	"github.com/flipside/othello/movegen"
	"github.com/flipside/othello/player"
)

const (
	MinimaxPlayer = "minimax"
	RandomPlayer  = "random"
)

var ErrUnknownPlayer = errors.New("unknown player type")

// NewPlayer builds a computer player of the given kind.
func NewPlayer(kind, name string, cfg *config.Config) (player.Player, error) {
	switch kind {
	case MinimaxPlayer, "":
		return player.NewMinimaxPlayer(name, cfg)
	case RandomPlayer:
		return player.NewRandomPlayer(name), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, kind)
}

// GameRunner is the master struct here for the automatic game logic.
// players[0] takes Black in even-numbered games.
type GameRunner struct {
	game         *game.Game
	config       *config.Config
	logchan      chan string
	players      [2]player.Player
	perPlayer    time.Duration
	openingPlies int
}

// NewGameRunner sets up a runner with two players of the given kinds.
func NewGameRunner(logchan chan string, cfg *config.Config, kind1, kind2 string) (*GameRunner, error) {
	r := &GameRunner{
		logchan:      logchan,
		config:       cfg,
		perPlayer:    cfg.GetDuration(config.ConfigTimePerPlayer),
		openingPlies: cfg.GetInt(config.ConfigRandomOpeningPlies),
	}
	p1, err := NewPlayer(kind1, kind1+"-1", cfg)
	if err != nil {
		return nil, err
	}
	p2, err := NewPlayer(kind2, kind2+"-2", cfg)
	if err != nil {
		return nil, err
	}
	r.Init(p1, p2)
	return r, nil
}

// Init replaces both players.
func (r *GameRunner) Init(p1, p2 player.Player) {
	r.players = [2]player.Player{p1, p2}
}

func (r *GameRunner) Game() *game.Game {
	return r.game
}

func (r *GameRunner) playerFor(c board.Color, blackIdx int) player.Player {
	if c == board.Black {
		return r.players[blackIdx]
	}
	return r.players[1-blackIdx]
}

// playRandomOpening plays a few uniformly random plies so that repeated
// games between deterministic engines still differ.
func (r *GameRunner) playRandomOpening() error {
	for i := 0; i < r.openingPlies && r.game.Playing(); i++ {
		moves := movegen.LegalMoves(r.game.Board()).Slice()
		if err := r.game.PlayMove(moves[frand.Intn(len(moves))]); err != nil {
			return err
		}
	}
	return nil
}

// PlayGame plays one game to the end and sends its log line. The players
// swap colors with the parity of gameNum.
func (r *GameRunner) PlayGame(ctx context.Context, gameNum int) (game.Result, error) {
	blackIdx := gameNum % 2
	r.game = game.NewGame(r.perPlayer)
	if err := r.playRandomOpening(); err != nil {
		return game.Result{}, err
	}
	r.game.Start()
	for r.game.Playing() {
		b := r.game.Board()
		p := r.playerFor(b.Turn(), blackIdx)
		ply, err := p.GenerateMove(ctx, b, r.game.TimeLeft(b.Turn()))
		if err != nil {
			return game.Result{}, err
		}
		if err := r.game.PlayMove(ply); err != nil {
			if errors.Is(err, game.ErrFlagFall) {
				break
			}
			return game.Result{}, err
		}
	}
	r.game.Clock().Stop()
	res := r.game.Result()
	log.Debug().Str("uid", r.game.Uid()).Str("result", res.String()).Msg("game-over")
	if r.logchan != nil {
		r.logchan <- r.logLine(res, gameNum)
	}
	return res, nil
}

func (r *GameRunner) logLine(res game.Result, gameNum int) string {
	blackIdx := gameNum % 2
	winner := "tie"
	if res.Winner != board.Empty {
		winner = r.playerFor(res.Winner, blackIdx).Name()
	}
	return fmt.Sprintf("%s,%d,%s,%s,%d,%d,%s,%t,%d\n",
		r.game.Uid(), gameNum,
		r.playerFor(board.Black, blackIdx).Name(),
		r.playerFor(board.White, blackIdx).Name(),
		res.Black, res.White, winner, res.FlagFall, r.game.Turn())
}
