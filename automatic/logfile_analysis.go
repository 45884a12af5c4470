package automatic

import (
	"cmp"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/yaml.v3"

	"github.com/flipside/othello/stats"
)

var ErrBadLogFile = errors.New("malformed self-play log")

const (
	confidence     = 95.0
	histogramBins  = 15
	histogramWidth = 5
)

// PlayerSummary is one player's record over a self-play log.
type PlayerSummary struct {
	Name       string  `yaml:"name"`
	Wins       float64 `yaml:"wins"`
	WinRate    float64 `yaml:"win-rate"`
	WinRateCI  float64 `yaml:"win-rate-ci"`
	WentFirst  int     `yaml:"went-first"`
	MeanDiscs  float64 `yaml:"mean-discs"`
	StdevDiscs float64 `yaml:"stdev-discs"`
}

// Summary holds the statistics over every game in a self-play log. The
// disc differentials are from the first player's point of view.
type Summary struct {
	GamesPlayed        int              `yaml:"games-played"`
	Players            [2]PlayerSummary `yaml:"players"`
	FirstMoverWins     float64          `yaml:"first-mover-wins"`
	FlagFalls          int              `yaml:"flag-falls"`
	MeanPlies          float64          `yaml:"mean-plies"`
	MeanDifferential   float64          `yaml:"mean-differential"`
	MedianDifferential float64          `yaml:"median-differential"`
	Differentials      []float64        `yaml:"-"`
}

type gameRecord struct {
	gameNum                int
	black, white           string
	blackDiscs, whiteDiscs int
	winner                 string
	flagFall               bool
	plies                  int
}

func parseRecord(record []string) (gameRecord, error) {
	var g gameRecord
	var err error
	if len(record) != 9 {
		return g, fmt.Errorf("%w: %d fields", ErrBadLogFile, len(record))
	}
	if g.gameNum, err = strconv.Atoi(record[1]); err != nil {
		return g, err
	}
	g.black, g.white, g.winner = record[2], record[3], record[6]
	if g.blackDiscs, err = strconv.Atoi(record[4]); err != nil {
		return g, err
	}
	if g.whiteDiscs, err = strconv.Atoi(record[5]); err != nil {
		return g, err
	}
	if g.flagFall, err = strconv.ParseBool(record[7]); err != nil {
		return g, err
	}
	if g.plies, err = strconv.Atoi(record[8]); err != nil {
		return g, err
	}
	return g, nil
}

// AnalyzeLogFile analyzes the given game CSV file.
func AnalyzeLogFile(filepath string) (*Summary, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return AnalyzeLog(file)
}

func AnalyzeLog(in io.Reader) (*Summary, error) {
	r := csv.NewReader(in)

	var records []gameRecord
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if record[0] == "gameID" {
			continue
		}
		g, err := parseRecord(record)
		if err != nil {
			return nil, err
		}
		records = append(records, g)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no games", ErrBadLogFile)
	}

	// Lines are written in the order games finish, not the order they
	// were started. Black of the lowest numbered game is player one.
	slices.SortStableFunc(records, func(a, b gameRecord) int {
		return cmp.Compare(a.gameNum, b.gameNum)
	})
	s := &Summary{GamesPlayed: len(records)}
	names := [2]string{records[0].black, records[0].white}
	var wins, discs [2]stats.Statistic
	plies := &stats.Statistic{}

	for _, g := range records {
		if !slices.Contains(names[:], g.black) || !slices.Contains(names[:], g.white) {
			return nil, fmt.Errorf("%w: more than two players", ErrBadLogFile)
		}
		p1Black := g.black == names[0]
		p1Discs, p2Discs := g.blackDiscs, g.whiteDiscs
		if !p1Black {
			p1Discs, p2Discs = p2Discs, p1Discs
		}
		discs[0].Push(float64(p1Discs))
		discs[1].Push(float64(p2Discs))
		s.Differentials = append(s.Differentials, float64(p1Discs-p2Discs))
		plies.Push(float64(g.plies))
		if p1Black {
			s.Players[0].WentFirst++
		} else {
			s.Players[1].WentFirst++
		}
		if g.flagFall {
			s.FlagFalls++
		}

		switch g.winner {
		case names[0]:
			wins[0].Push(1)
			wins[1].Push(0)
		case names[1]:
			wins[0].Push(0)
			wins[1].Push(1)
		default:
			wins[0].Push(0.5)
			wins[1].Push(0.5)
		}
		switch g.winner {
		case g.black:
			s.FirstMoverWins++
		case g.white:
		default:
			s.FirstMoverWins += 0.5
		}
	}

	for i := range s.Players {
		p := &s.Players[i]
		p.Name = names[i]
		p.WinRate = wins[i].Mean()
		p.Wins = p.WinRate * float64(s.GamesPlayed)
		p.WinRateCI = wins[i].ConfidenceInterval(confidence)
		p.MeanDiscs = discs[i].Mean()
		p.StdevDiscs = discs[i].Stdev()
	}
	s.MeanPlies = plies.Mean()
	s.MeanDifferential = stat.Mean(s.Differentials, nil)
	sorted := slices.Clone(s.Differentials)
	slices.Sort(sorted)
	s.MedianDifferential = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s, nil
}

func (s *Summary) String() string {
	var sb strings.Builder
	n := float64(s.GamesPlayed)
	fmt.Fprintf(&sb, "Games played: %d\n", s.GamesPlayed)
	for _, p := range s.Players {
		fmt.Fprintf(&sb, "%v wins: %.1f (%.3f%% ± %.3f%%)\n", p.Name, p.Wins,
			100.0*p.WinRate, 100.0*p.WinRateCI)
		fmt.Fprintf(&sb, "%v went first: %d (%.3f%%)\n", p.Name, p.WentFirst,
			100.0*float64(p.WentFirst)/n)
	}
	fmt.Fprintf(&sb, "Player who went first wins: %.1f (%.3f%%)\n",
		s.FirstMoverWins, 100.0*s.FirstMoverWins/n)
	for _, p := range s.Players {
		fmt.Fprintf(&sb, "%v Mean Discs: %.6f  Stdev: %.6f\n", p.Name, p.MeanDiscs, p.StdevDiscs)
	}
	fmt.Fprintf(&sb, "Disc differential mean: %.3f  median: %.1f\n",
		s.MeanDifferential, s.MedianDifferential)
	fmt.Fprintf(&sb, "Mean plies: %.2f  Flag falls: %d\n", s.MeanPlies, s.FlagFalls)
	return sb.String()
}

// Histogram draws the disc differential distribution.
func (s *Summary) Histogram(w io.Writer) error {
	if len(s.Differentials) == 0 {
		return nil
	}
	hist := histogram.Hist(histogramBins, s.Differentials)
	return histogram.Fprint(w, hist, histogram.Linear(histogramWidth))
}

// YAML exports the summary, with the per-player lines keyed by name.
func (s *Summary) YAML() ([]byte, error) {
	return yaml.Marshal(struct {
		Summary `yaml:",inline"`
		ByName  map[string]PlayerSummary `yaml:"by-name"`
	}{
		Summary: *s,
		ByName: lo.SliceToMap(s.Players[:], func(p PlayerSummary) (string, PlayerSummary) {
			return p.Name, p
		}),
	})
}
