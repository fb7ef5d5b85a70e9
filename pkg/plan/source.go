package plan

import (
	"context"
	"errors"
	"maps"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Source defines how the plan catalog is loaded.
type Source interface {
	Load(ctx context.Context) (map[string]Plan, error)
}

// inMemSource implements Source using an in-memory plan map.
type inMemSource struct {
	mu    sync.RWMutex
	plans map[string]Plan
}

// NewInMemSource returns an in-memory Source with a copy of the given plans.
func NewInMemSource(plans map[string]Plan) Source {
	return &inMemSource{plans: maps.Clone(plans)}
}

// Load returns a copy of all available plans from memory.
func (s *inMemSource) Load(ctx context.Context) (map[string]Plan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.plans), nil
}

// yamlSource loads the plan catalog from a YAML file on every Load call,
// so pricing script edits are picked up on restart without a rebuild.
type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source reading the catalog from the given YAML file.
// The file holds a list of plans:
//
//	- code: gratuito
//	  name: Gratuito
//	  sessions_per_day: 1
//	  questions_per_session: 20
//	  report_tier: basico
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

// Load reads and parses the catalog file, keyed by plan code.
func (s *yamlSource) Load(ctx context.Context) (map[string]Plan, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	var list []Plan
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}

	plans := make(map[string]Plan, len(list))
	for _, p := range list {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		plans[p.Code] = p
	}
	return plans, nil
}
