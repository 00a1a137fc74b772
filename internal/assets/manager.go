package assets

import (
	"sync"

	"model-viewer/internal/logger"
)

// Manager aggregates start/progress/complete/error over every item the loaders fetch.
// Callbacks are optional and run on the goroutine that reported the item.
type Manager struct {
	OnStart    func(url string, loaded, total int)
	OnProgress func(url string, loaded, total int)
	OnLoad     func()
	OnError    func(url string, err error)

	mu      sync.Mutex
	loading bool
	loaded  int
	total   int
}

// NewLogManager returns a Manager that logs every lifecycle event to log.
func NewLogManager(log *logger.Logger) *Manager {
	return &Manager{
		OnStart: func(url string, loaded, total int) {
			log.Logf("started loading %s (%d of %d)", url, loaded, total)
		},
		OnProgress: func(url string, loaded, total int) {
			log.Logf("loaded %s (%d of %d)", url, loaded, total)
		},
		OnLoad: func() {
			log.Log("all assets loaded")
		},
		OnError: func(url string, err error) {
			log.Logf("error loading %s: %v", url, err)
		},
	}
}

// ItemStart records that url began loading.
func (m *Manager) ItemStart(url string) {
	m.mu.Lock()
	m.total++
	first := !m.loading
	m.loading = true
	loaded, total := m.loaded, m.total
	m.mu.Unlock()

	if first && m.OnStart != nil {
		m.OnStart(url, loaded, total)
	}
}

// ItemEnd records that url finished, successfully or not.
func (m *Manager) ItemEnd(url string) {
	m.mu.Lock()
	m.loaded++
	loaded, total := m.loaded, m.total
	done := loaded == total
	if done {
		m.loading = false
	}
	m.mu.Unlock()

	if m.OnProgress != nil {
		m.OnProgress(url, loaded, total)
	}
	if done && m.OnLoad != nil {
		m.OnLoad()
	}
}

// ItemError reports a failed item. Callers still call ItemEnd.
func (m *Manager) ItemError(url string, err error) {
	if m.OnError != nil {
		m.OnError(url, err)
	}
}

// Counts returns how many items finished and how many were started.
func (m *Manager) Counts() (loaded, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded, m.total
}
