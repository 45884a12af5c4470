package player

import (
	"sync"

	"github.com/flipside/othello/board"
)

// Mailbox is a lock-protected single slot holding at most one ply.
type Mailbox struct {
	mu   sync.Mutex
	ply  board.Ply
	full bool
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Put replaces whatever is in the slot.
func (m *Mailbox) Put(ply board.Ply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ply = ply
	m.full = true
}

// Take empties the slot.
func (m *Mailbox) Take() (board.Ply, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.full {
		return board.Ply{}, false
	}
	ply := m.ply
	m.ply, m.full = board.Ply{}, false
	return ply, true
}

func (m *Mailbox) Empty() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.full
}
