package minimax

import (
	"fmt"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/flipside/othello/board"
	"github.com/flipside/othello/equity"
	"github.com/flipside/othello/zobrist"
)

const (
	TTExact = 0x01
	TTLower = 0x02
	TTUpper = 0x03
)

// ReplacementPolicy decides whether an insert may overwrite an existing
// entry for the same position.
type ReplacementPolicy int

const (
	// ReplaceAlways: the last write wins.
	ReplaceAlways ReplacementPolicy = iota
	// ReplaceIfDeeper keeps an existing entry that was searched deeper than
	// the incoming one.
	ReplaceIfDeeper
)

func (p ReplacementPolicy) String() string {
	switch p {
	case ReplaceAlways:
		return "always"
	case ReplaceIfDeeper:
		return "deeper"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParseReplacementPolicy reads the names printed by String.
func ParseReplacementPolicy(s string) (ReplacementPolicy, error) {
	switch s {
	case "always", "":
		return ReplaceAlways, nil
	case "deeper":
		return ReplaceIfDeeper, nil
	}
	return ReplaceAlways, fmt.Errorf("unknown transposition table policy %q", s)
}

// TableEntry is a resolved search result and the remaining depth it was
// searched to. Flag says whether Response.Eval is the exact value or only
// a bound on it.
type TableEntry struct {
	Response equity.Response
	Depth    int
	Flag     uint8
}

func (t TableEntry) valid() bool {
	return t.Flag != 0
}

type storedEntry struct {
	board board.Board
	TableEntry
}

// approximate bytes per map slot: key, board and entry plus map overhead
const entrySize = 64

// maxSizeHint caps the preallocation so a table never reserves more up front
// than a long search is likely to fill.
const maxSizeHint = 1 << 16

// TranspositionTable caches search results by position. It has no capacity
// bound and is owned by a single search session.
type TranspositionTable struct {
	table   map[uint64]storedEntry
	policy  ReplacementPolicy
	zobrist *zobrist.Zobrist

	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	t2collisions atomic.Uint64
}

// SizeHint converts a fraction of total system memory into an initial table
// capacity.
func SizeHint(fractionOfMemory float64) int {
	if fractionOfMemory <= 0 {
		return 0
	}
	totalMem := memory.TotalMemory()
	desired := int(fractionOfMemory * float64(totalMem) / entrySize)
	return min(desired, maxSizeHint)
}

func NewTranspositionTable(policy ReplacementPolicy, sizeHint int) *TranspositionTable {
	t := &TranspositionTable{
		table:   make(map[uint64]storedEntry, sizeHint),
		policy:  policy,
		zobrist: zobrist.New(),
	}
	log.Debug().Int("size-hint", sizeHint).
		Str("policy", policy.String()).
		Msg("transposition-table-created")
	return t
}

func (t *TranspositionTable) Zobrist() *zobrist.Zobrist {
	return t.zobrist
}

func (t *TranspositionTable) Len() int {
	return len(t.table)
}

// Get returns the entry stored for b, if any.
func (t *TranspositionTable) Get(b board.Board) (TableEntry, bool) {
	e := t.lookup(t.zobrist.Hash(b), b)
	return e, e.valid()
}

// Insert stores e for b, subject to the table's replacement policy.
func (t *TranspositionTable) Insert(b board.Board, e TableEntry) {
	t.store(t.zobrist.Hash(b), b, e)
}

func (t *TranspositionTable) lookup(zval uint64, b board.Board) TableEntry {
	t.lookups.Add(1)
	e, ok := t.table[zval]
	if !ok {
		return TableEntry{}
	}
	if e.board != b {
		// Two different positions share the same hash.
		t.t2collisions.Add(1)
		return TableEntry{}
	}
	t.hits.Add(1)
	return e.TableEntry
}

func (t *TranspositionTable) store(zval uint64, b board.Board, e TableEntry) {
	if e.Flag == 0 {
		e.Flag = TTExact
	}
	if t.policy == ReplaceIfDeeper {
		if old, ok := t.table[zval]; ok && old.board == b && old.Depth > e.Depth {
			return
		}
	}
	t.table[zval] = storedEntry{board: b, TableEntry: e}
	t.created.Add(1)
}

// TableStats is a snapshot of the table counters.
type TableStats struct {
	Entries      int    `yaml:"entries"`
	Created      uint64 `yaml:"created"`
	Lookups      uint64 `yaml:"lookups"`
	Hits         uint64 `yaml:"hits"`
	T2Collisions uint64 `yaml:"t2collisions"`
}

func (t *TranspositionTable) Stats() TableStats {
	return TableStats{
		Entries:      len(t.table),
		Created:      t.created.Load(),
		Lookups:      t.lookups.Load(),
		Hits:         t.hits.Load(),
		T2Collisions: t.t2collisions.Load(),
	}
}
