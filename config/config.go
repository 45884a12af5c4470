package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug              = "debug"
	ConfigConfigFile         = "config"
	ConfigTimePerPlayer      = "time-per-player"
	ConfigMaxDepth           = "max-depth"
	ConfigTTReplacement      = "tt-replacement"
	ConfigTTMemoryFraction   = "tt-memory-fraction"
	ConfigEvaluator          = "evaluator"
	ConfigAutoplayThreads    = "autoplay-threads"
	ConfigAutoplayOutput     = "autoplay-output"
	ConfigRandomOpeningPlies = "random-opening-plies"
	ConfigCPUProfile         = "cpu-profile"
	ConfigMemProfile         = "mem-profile"
)

const envPrefix = "othello"

type Config struct {
	*viper.Viper
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigTimePerPlayer, 5*time.Minute)
	v.SetDefault(ConfigMaxDepth, 60)
	v.SetDefault(ConfigTTReplacement, "always")
	v.SetDefault(ConfigTTMemoryFraction, 0.05)
	v.SetDefault(ConfigEvaluator, "heuristic")
	v.SetDefault(ConfigAutoplayThreads, 4)
	v.SetDefault(ConfigAutoplayOutput, "/tmp/othello-autoplay.txt")
	v.SetDefault(ConfigRandomOpeningPlies, 4)
}

// DefaultConfig returns a config holding only the defaults. Tests use it.
func DefaultConfig() *Config {
	c := &Config{}
	c.Viper = viper.New()
	setDefaults(c.Viper)
	return c
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("othello", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigConfigFile, "", "optional YAML config file")
	fs.Duration(ConfigTimePerPlayer, 5*time.Minute, "clock time for each player")
	fs.Int(ConfigMaxDepth, 60, "deepest iterative deepening pass")
	fs.String(ConfigTTReplacement, "always", "transposition table replacement policy: always or deeper")
	fs.Float64(ConfigTTMemoryFraction, 0.05, "fraction of system memory used to size the transposition table up front")
	fs.String(ConfigEvaluator, "heuristic", "static evaluator: heuristic or discs")
	fs.Int(ConfigAutoplayThreads, 4, "number of parallel self-play games")
	fs.String(ConfigAutoplayOutput, "/tmp/othello-autoplay.txt", "self-play log file")
	fs.Int(ConfigRandomOpeningPlies, 4, "random plies played before the engines take over in self-play")
	fs.String(ConfigCPUProfile, "", "write a cpu profile to this file")
	fs.String(ConfigMemProfile, "", "write a memory profile to this file")
	return fs
}

// Load reads flags from args, then the environment (OTHELLO_ prefix) and an
// optional config file. Flags take precedence. Arguments that are not flags
// are returned for the caller to interpret.
func (c *Config) Load(args []string) ([]string, error) {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := newFlagSet()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := c.BindPFlags(fs); err != nil {
		return nil, err
	}

	c.SetEnvPrefix(envPrefix)
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		c.SetConfigType("yaml")
		if err := c.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading %s: %w", cfgFile, err)
			}
			log.Warn().Str("file", cfgFile).Msg("config-file-not-found")
		}
	}
	return fs.Args(), nil
}

// SanitizedSettings is every setting, for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
