package automatic

// Data collection for automatic games.

import (
	"context"
	"errors"
	"expvar"
	"io"
	"os"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/flipside/othello/config"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int

	playing atomic.Bool
)

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

const LogHeader = "gameID,game,black,white,black_discs,white_discs,winner,flag_fall,plies\n"

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

type Job struct {
	gameNum int
}

// PlayCompVComp plays numGames between two computer players over the given
// number of threads and writes one CSV line per game to w. It returns once
// every game has finished or ctx is done.
func PlayCompVComp(ctx context.Context, cfg *config.Config, kind1, kind2 string,
	numGames, threads int, w io.Writer) error {

	if !playing.CompareAndSwap(false, true) {
		return ErrAlreadyPlaying
	}
	defer playing.Store(false)
	return playCompVComp(ctx, cfg, kind1, kind2, numGames, threads, w)
}

func playCompVComp(ctx context.Context, cfg *config.Config, kind1, kind2 string,
	numGames, threads int, w io.Writer) error {

	threads = max(1, min(threads, numGames))
	log.Debug().Int("games", numGames).Int("threads", threads).Msg("starting-autoplay")

	// Runners are built up front so that a bad player type fails fast.
	runners := make([]*GameRunner, threads)
	logChan := make(chan string, 100)
	for i := range runners {
		r, err := NewGameRunner(logChan, cfg, kind1, kind2)
		if err != nil {
			return err
		}
		runners[i] = r
	}

	CVCCounter.Set(0)
	writeErr := make(chan error, 1)
	go func() {
		_, err := io.WriteString(w, LogHeader)
		for msg := range logChan {
			if err != nil {
				continue
			}
			_, err = io.WriteString(w, msg)
		}
		writeErr <- err
	}()

	jobs := make(chan Job, 100)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- Job{gameNum: i}:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%1000 == 0 {
				log.Info().Int("queued", i+1).Msg("queued-jobs")
			}
		}
		log.Debug().Msg("Finished queueing all jobs.")
		return nil
	})
	for _, r := range runners {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for j := range jobs {
				if _, err := r.PlayGame(gctx, j.gameNum); err != nil {
					return err
				}
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	err := g.Wait()
	close(logChan)
	werr := <-writeErr
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	log.Info().Int64("games", CVCCounter.Value()).Msg("All games finished.")
	return werr
}

// StartCompVComp runs PlayCompVComp in the background, logging to
// outputFilename. Progress is visible through CVCCounter.
func StartCompVComp(ctx context.Context, cfg *config.Config, kind1, kind2 string,
	numGames, threads int, outputFilename string) error {

	if !playing.CompareAndSwap(false, true) {
		return ErrAlreadyPlaying
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		playing.Store(false)
		return err
	}
	go func() {
		defer playing.Store(false)
		defer logfile.Close()
		err := playCompVComp(ctx, cfg, kind1, kind2, numGames, threads, logfile)
		if err != nil {
			log.Err(err).Msg("autoplay-stopped")
		}
	}()
	return nil
}

// Playing reports whether self-play games are in progress.
func Playing() bool {
	return playing.Load()
}
