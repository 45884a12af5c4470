package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigMaxDepth), 60)
	is.Equal(cfg.GetString(ConfigTTReplacement), "always")
	is.Equal(cfg.GetDuration(ConfigTimePerPlayer), 5*time.Minute)
	is.Equal(cfg.GetBool(ConfigDebug), false)
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	rest, err := cfg.Load([]string{"--max-depth", "8", "--tt-replacement=deeper", "--debug", "autoplay"})
	is.NoErr(err)
	is.Equal(rest, []string{"autoplay"})
	is.Equal(cfg.GetInt(ConfigMaxDepth), 8)
	is.Equal(cfg.GetString(ConfigTTReplacement), "deeper")
	is.True(cfg.GetBool(ConfigDebug))
	// untouched flags keep their defaults
	is.Equal(cfg.GetString(ConfigEvaluator), "heuristic")
}

func TestLoadEnvAndFile(t *testing.T) {
	is := is.New(t)
	t.Setenv("OTHELLO_AUTOPLAY_THREADS", "9")

	dir := t.TempDir()
	path := filepath.Join(dir, "othello.yaml")
	err := os.WriteFile(path, []byte("evaluator: discs\ntime-per-player: 30s\n"), 0o644)
	is.NoErr(err)

	cfg := &Config{}
	_, err = cfg.Load([]string{"--config", path})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigAutoplayThreads), 9)
	is.Equal(cfg.GetString(ConfigEvaluator), "discs")
	is.Equal(cfg.GetDuration(ConfigTimePerPlayer), 30*time.Second)
	is.True(len(cfg.SanitizedSettings()) > 0)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	_, err := cfg.Load([]string{"--no-such-flag"})
	is.True(err != nil)
}
