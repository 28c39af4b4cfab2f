package panel

import (
	"log/slog"
	"sync"
)

// Manager enforces the process-wide singleton surface. The invariant is a
// plain existence check under the manager's lock.
type Manager struct {
	mu      sync.Mutex
	factory Factory
	current Surface
	log     *slog.Logger
}

func NewManager(factory Factory, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{factory: factory, log: log}
}

// GetOrCreate returns the existing surface, revealing it in the given
// column, or constructs a new one. The second return reports whether a
// construction happened.
func (m *Manager) GetOrCreate(column int) (Surface, bool, error) {
	if column <= 0 {
		column = DefaultColumn
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		m.current.Reveal(column)
		return m.current, false, nil
	}

	surface, err := m.factory.New(Options{Column: column})
	if err != nil {
		return nil, false, err
	}
	m.current = surface
	m.log.Debug("panel surface created", "panel_id", surface.ID(), "column", column)
	return surface, true, nil
}

// Current returns the live surface, if any.
func (m *Manager) Current() (Surface, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.current != nil
}

// HandleDisposed clears the singleton after the user closed the panel.
// Stale IDs are ignored so a late close event cannot drop a new surface.
func (m *Manager) HandleDisposed(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil || m.current.ID() != id {
		return
	}
	m.current = nil
	m.log.Debug("panel surface disposed", "panel_id", id)
}
