package services

import (
	"github.com/tidewire/tidewire/internal/config"
	"github.com/tidewire/tidewire/pkg/executor"
)

// NewExecutorManager creates and registers one pool per definition.
func NewExecutorManager(defs []config.Executor) (*executor.Manager, error) {
	m := executor.NewManager()
	for _, d := range defs {
		var opts []executor.PoolOption
		if d.QueueSize > 0 {
			opts = append(opts, executor.WithQueueSize(d.QueueSize))
		}
		p := executor.NewPool(d.Name, d.Workers, opts...)
		if err := m.Register(p); err != nil {
			p.Close()
			m.Close()
			return nil, err
		}
	}
	return m, nil
}
