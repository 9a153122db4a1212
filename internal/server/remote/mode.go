package remote

import (
	"sync"

	"github.com/retroctl/retroctl/internal/protocol"
)

// ModeState is the shared input-mode cell. Packet classification reads it
// on every keyboard and gamepad TCP frame; only a decoded mode-switch
// command writes it. It never reverts on its own.
type ModeState struct {
	mu   sync.RWMutex
	mode protocol.Mode
}

func NewModeState() *ModeState {
	return &ModeState{mode: protocol.ModeMouseKeyboard}
}

func (m *ModeState) Get() protocol.Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

func (m *ModeState) Set(mode protocol.Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}
