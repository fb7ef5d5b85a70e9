package feature

import (
	"context"
	"sync"
	"time"
)

// MemoryProvider is an in-memory Provider for tests and local development.
type MemoryProvider struct {
	mu    sync.RWMutex
	flags map[string]*Flag
}

// NewMemoryProvider creates a provider seeded with the given flags.
func NewMemoryProvider(initial ...Flag) *MemoryProvider {
	p := &MemoryProvider{flags: make(map[string]*Flag, len(initial))}
	for _, f := range initial {
		cp := f
		if cp.UpdatedAt.IsZero() {
			cp.UpdatedAt = time.Now()
		}
		p.flags[f.Name] = &cp
	}
	return p
}

func (p *MemoryProvider) IsEnabled(ctx context.Context, name string) (bool, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	f, ok := p.flags[name]
	if !ok {
		return false, ErrFlagNotFound
	}
	return f.Enabled, nil
}

func (p *MemoryProvider) SetEnabled(ctx context.Context, name string, enabled bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if f, ok := p.flags[name]; ok {
		f.Enabled = enabled
		f.UpdatedAt = time.Now()
		return nil
	}
	p.flags[name] = &Flag{Name: name, Enabled: enabled, UpdatedAt: time.Now()}
	return nil
}
