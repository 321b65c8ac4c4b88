package executor

import (
	"sort"
	"sync"

	srvErrors "github.com/tidewire/tidewire/pkg/errors"
)

// Manager owns the named executors of a process.
type Manager struct {
	mu        sync.RWMutex
	executors map[string]Executor
}

func NewManager() *Manager {
	return &Manager{executors: make(map[string]Executor)}
}

// Register adds e under e.Name(). Names must be unique.
func (m *Manager) Register(e Executor) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, found := m.executors[e.Name()]; found {
		return srvErrors.NewDuplicateResourceError("executor", e.Name())
	}
	m.executors[e.Name()] = e
	return nil
}

func (m *Manager) Get(name string) (Executor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, found := m.executors[name]
	if !found {
		return nil, srvErrors.NewExecutorNotFoundError(name)
	}
	return e, nil
}

// Names returns the registered executor names in lexical order.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.executors))
	for name := range m.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every executor and forgets them.
func (m *Manager) Close() {
	m.mu.Lock()
	executors := m.executors
	m.executors = make(map[string]Executor)
	m.mu.Unlock()

	for _, e := range executors {
		e.Close()
	}
}
