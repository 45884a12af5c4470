// Command analyze summarizes a self-play log without starting the shell.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flipside/othello/automatic"
	"github.com/flipside/othello/config"
)

func main() {
	cfg := &config.Config{}
	args, err := cfg.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	logfile := cfg.GetString(config.ConfigAutoplayOutput)
	if len(args) > 0 {
		logfile = args[0]
	}
	summary, err := automatic.AnalyzeLogFile(logfile)
	if err != nil {
		log.Fatal().Err(err).Str("file", logfile).Msg("analyze-failed")
	}
	fmt.Print(summary.String())
	fmt.Println()
	if err := summary.Histogram(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("histogram-failed")
	}
}
