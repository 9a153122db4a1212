package remote

import (
	"net/netip"
	"sync"
	"sync/atomic"
)

// SessionTracker arbitrates single ownership of one logical input channel.
// At most one peer address holds the channel at a time; a new acquisition
// evicts the previous holder by firing its cancellation channel. The
// record mutation and the decision to evict happen under one lock, so
// concurrent admits and teardowns cannot interleave.
type SessionTracker struct {
	mu     sync.Mutex
	nextID uint64

	held   bool
	addr   netip.Addr
	id     uint64
	cancel chan struct{}
}

// Session is one granted ownership of a channel.
type Session struct {
	Addr netip.Addr
	ID   uint64

	cancel  chan struct{}
	tracker *SessionTracker
}

func NewSessionTracker() *SessionTracker {
	return &SessionTracker{}
}

// Acquire installs a new session for addr, evicting any previous holder
// regardless of address. Eviction is a one-shot wake: the losing handler
// observes it at its next suspension point, it is not a forced abort.
func (t *SessionTracker) Acquire(addr netip.Addr) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.installLocked(addr)
}

// Touch is the datagram variant of Acquire: a packet from the current
// holder is a continuation and changes nothing, a packet from a different
// address takes the channel over. It reports whether a previous holder
// was displaced.
func (t *SessionTracker) Touch(addr netip.Addr) (sess *Session, evicted bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.held && t.addr == addr {
		return nil, false
	}
	evicted = t.held
	return t.installLocked(addr), evicted
}

// Current returns the owning address, if any.
func (t *SessionTracker) Current() (netip.Addr, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.addr, t.held
}

func (t *SessionTracker) installLocked(addr netip.Addr) *Session {
	if t.held {
		close(t.cancel)
	}
	t.nextID++
	t.held = true
	t.addr = addr
	t.id = t.nextID
	t.cancel = make(chan struct{})
	return &Session{Addr: addr, ID: t.id, cancel: t.cancel, tracker: t}
}

// Done is closed when the session has been evicted.
func (s *Session) Done() <-chan struct{} { return s.cancel }

// Evicted reports whether the session has lost the channel.
func (s *Session) Evicted() bool {
	select {
	case <-s.cancel:
		return true
	default:
		return false
	}
}

// Release clears the tracker record, but only while this session is still
// the recorded holder. A stale release from an already-evicted handler
// must not wipe out the new owner's record.
func (s *Session) Release() {
	t := s.tracker
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.held && t.addr == s.Addr && t.id == s.ID {
		t.held = false
		t.addr = netip.Addr{}
		t.id = 0
		t.cancel = nil
	}
}

// ClientCounter counts live connection handlers. Discovery announcements
// are suppressed while it is nonzero.
type ClientCounter struct {
	n atomic.Int64
}

func (c *ClientCounter) Add()          { c.n.Add(1) }
func (c *ClientCounter) Done()         { c.n.Add(-1) }
func (c *ClientCounter) Active() int64 { return c.n.Load() }
